package client

import (
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// Payload is a JSON request body under construction.
type Payload map[string]interface{}

// Compact returns a copy without nil values. Only optional fields are ever
// nil; false, 0 and "" are kept.
func (p Payload) Compact() Payload {
	out := make(Payload, len(p))

	for key, value := range p {
		if isNil(value) {
			continue
		}

		out[key] = value
	}

	return out
}

func isNil(value interface{}) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case *int:
		return typed == nil
	case *bool:
		return typed == nil
	case *string:
		return typed == nil
	default:
		return false
	}
}

func withTargets(payload Payload, targets twoindex.SearchEngineTargets, googleAccessGranted bool) Payload {
	payload["google"] = targets.Google
	payload["yandex"] = targets.Yandex
	payload["bing"] = targets.Bing
	payload["google_access_granted"] = googleAccessGranted

	return payload
}

func indexingProjectPayload(request *twoindex.IndexingProjectCreateRequest) Payload {
	return Payload{
		"name":               request.Name,
		"website":            request.Website,
		"for_external_links": request.ForExternalLinks,
		"indexing_speed":     request.IndexingSpeed,
		"type":               twoindex.ProjectTypeIndexing,
	}.Compact()
}

func indexingCheckProjectPayload(request *twoindex.IndexingCheckProjectCreateRequest) Payload {
	return Payload{
		"name":           request.Name,
		"checking_speed": request.CheckingSpeed,
		"type":           twoindex.ProjectTypeIndexingCheck,
	}.Compact()
}

func linksAddPayload(request *twoindex.LinksAddRequest) Payload {
	return withTargets(Payload{
		"project_id": request.ProjectID,
		"links":      request.Links,
	}, request.SearchEngineTargets, request.GoogleAccessGranted)
}

func linksAddSimplePayload(request *twoindex.LinksAddSimpleRequest, defaultProjectName string) Payload {
	projectName := request.ProjectName
	if projectName == "" {
		projectName = defaultProjectName
	}

	return withTargets(Payload{
		"project_name": projectName,
		"links":        request.Links,
	}, request.SearchEngineTargets, request.GoogleAccessGranted)
}

func sitemapAddPayload(request *twoindex.SitemapAddRequest) Payload {
	payload := withTargets(Payload{
		"project_id": request.ProjectID,
		"sitemap":    request.SitemapURL,
	}, request.SearchEngineTargets, request.GoogleAccessGranted)
	payload["watch"] = request.Watch

	return payload
}

func sitemapRefPayload(projectID, sitemapID int) Payload {
	return Payload{
		"project_id": projectID,
		"sitemap_id": sitemapID,
	}
}
