// Package twoindex provides types, interfaces, and helpers for working with the
// 2Index Ninja link-indexing API.
//
// # Overview
//
// The twoindex package defines the domain types (Account, Project, LinkSource),
// the request types for write operations, and the Client interface. A concrete
// implementation is provided by the ninjaclient package, which wires the access
// token, transport and logging. Most consumers import ninjaclient to construct
// a client and then use the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/2index-ninja/sdk-go/pkg/ninjaclient"
//	  "github.com/2index-ninja/sdk-go/pkg/twoindex"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := ninjaclient.NewWithToken("your-token")
//	  if err != nil { log.Fatal(err) }
//
//	  account, err := cli.GetAccount(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = account
//
//	  msg, err := cli.Links().Add(ctx, &twoindex.LinksAddRequest{
//	    ProjectID:           42,
//	    Links:               twoindex.LinksFromList("https://example.com/a"),
//	    SearchEngineTargets: twoindex.SearchEngineTargets{Google: true},
//	  })
//	  _ = msg
//	}
//
// Every operation is available both on a resource client (Projects().List)
// and as a flat method on Client (GetProjects).
//
// # Errors
//
// Two error types cover every failure. NetworkError means the outcome is
// unknown: the request never completed or the response could not be decoded.
// APIError means the server answered and refused the operation; its Errors and
// InvalidLinks fields carry the server's details:
//
//	_, err := cli.AddLinks(ctx, req)
//	if apiErr, ok := twoindex.AsAPIError(err); ok {
//	  for _, link := range apiErr.InvalidLinks { fmt.Println("rejected:", link) }
//	}
//
// APIError also matches ErrUnauthorized, ErrNotFound and ErrValidation with
// errors.Is.
//
// # Interceptors
//
// Config.Interceptors takes an InterceptorChain whose request interceptors may
// add headers or abort a call, and whose response interceptors observe every
// response. LoggingInterceptor, HeaderInterceptor and the metrics interceptors
// cover the common cases.
package twoindex
