// Package ninjaclient provides the primary entry point for constructing a
// 2Index Ninja API client that implements the twoindex.Client interface.
//
// It layers configuration, HTTP transport and logging on top of the resource
// interfaces and types defined in the twoindex package. Constructing a client
// validates the configuration only; the first network call happens when an
// operation is invoked.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "time"
//
//	  "github.com/2index-ninja/sdk-go/pkg/ninjaclient"
//	  "github.com/2index-ninja/sdk-go/pkg/twoindex"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just the access token.
//	  cli, err := ninjaclient.NewWithToken("your-access-token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with transport options:
//	  cli, err = ninjaclient.New(&twoindex.Config{
//	    AccessToken: "your-access-token",
//	    HTTPTimeout: 10 * time.Second,
//	    ProxyURL:    "http://proxy.internal:3128",
//	  })
//
//	  projects, err := cli.GetProjects(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = projects
//	}
//
// The returned client holds immutable configuration and is safe for
// concurrent use.
package ninjaclient
