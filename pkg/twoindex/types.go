package twoindex

import (
	"encoding/json"
	"fmt"
)

// Project types.
const (
	ProjectTypeIndexing      = "indexing"
	ProjectTypeIndexingCheck = "indexing_check"
)

// Account represents the /account response.
type Account struct {
	Email                         string  `json:"email"                            yaml:"email"`
	Tariff                        string  `json:"tariff"                           yaml:"tariff"`
	Balance                       float64 `json:"balance"                          yaml:"balance"`
	AvailableProjects             int     `json:"available_projects"               yaml:"available_projects"`
	AvailableLinks                int     `json:"available_links"                  yaml:"available_links"`
	AvailableIndexationCheckLinks int     `json:"available_indexation_check_links" yaml:"available_indexation_check_links"`
	LinkSendingSpeed              int     `json:"link_sending_speed"               yaml:"link_sending_speed"`
	IsTariffAvailable             bool    `json:"tariff_available"                 yaml:"tariff_available"`
	TariffExpiringDate            *string `json:"tariff_expiring_date"             yaml:"tariff_expiring_date"`
	IsEmailVerified               bool    `json:"email_verified"                   yaml:"email_verified"`
	LinkCost                      string  `json:"link_cost"                        yaml:"link_cost"`
}

// UnmarshalJSON implements json.Unmarshaler.
// Balance accepts a JSON number or a numeric string.
func (a *Account) UnmarshalJSON(data []byte) error {
	var raw struct {
		Email                         flexString `json:"email"`
		Tariff                        flexString `json:"tariff"`
		Balance                       flexFloat  `json:"balance"`
		AvailableProjects             count      `json:"available_projects"`
		AvailableLinks                count      `json:"available_links"`
		AvailableIndexationCheckLinks count      `json:"available_indexation_check_links"`
		LinkSendingSpeed              count      `json:"link_sending_speed"`
		IsTariffAvailable             flexBool   `json:"tariff_available"`
		TariffExpiringDate            *string    `json:"tariff_expiring_date"`
		IsEmailVerified               flexBool   `json:"email_verified"`
		LinkCost                      flexString `json:"link_cost"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding account: %w", err)
	}

	*a = Account{
		Email:                         string(raw.Email),
		Tariff:                        string(raw.Tariff),
		Balance:                       float64(raw.Balance),
		AvailableProjects:             int(raw.AvailableProjects),
		AvailableLinks:                int(raw.AvailableLinks),
		AvailableIndexationCheckLinks: int(raw.AvailableIndexationCheckLinks),
		LinkSendingSpeed:              int(raw.LinkSendingSpeed),
		IsTariffAvailable:             bool(raw.IsTariffAvailable),
		TariffExpiringDate:            raw.TariffExpiringDate,
		IsEmailVerified:               bool(raw.IsEmailVerified),
		LinkCost:                      string(raw.LinkCost),
	}

	return nil
}

// Project represents a project. Fields after NotIndexed are only present for
// some project types and are nil otherwise.
type Project struct {
	ID         int    `json:"id"          yaml:"id"`
	Name       string `json:"name"        yaml:"name"`
	Type       string `json:"type"        yaml:"type"`
	Status     string `json:"status"      yaml:"status"`
	CreatedAt  string `json:"created_at"  yaml:"created_at"`
	LinksTotal int    `json:"links_total" yaml:"links_total"`
	InQueue    int    `json:"in_queue"    yaml:"in_queue"`
	Indexed    int    `json:"indexed"     yaml:"indexed"`
	NotIndexed int    `json:"not_indexed" yaml:"not_indexed"`

	Website                    *string `json:"website,omitempty"                       yaml:"website,omitempty"`
	LinksType                  *string `json:"links_type,omitempty"                    yaml:"links_type,omitempty"`
	GoogleAccountAccessGranted *bool   `json:"google_account_access_granted,omitempty" yaml:"google_account_access_granted,omitempty"`
	LinksSendingSpeed          *int    `json:"links_sending_speed,omitempty"           yaml:"links_sending_speed,omitempty"`
	LinksSentGoogle            *int    `json:"links_sent_google,omitempty"             yaml:"links_sent_google,omitempty"`
	LinksSentYandex            *int    `json:"links_sent_yandex,omitempty"             yaml:"links_sent_yandex,omitempty"`
	LinksSentBing              *int    `json:"links_sent_bing,omitempty"               yaml:"links_sent_bing,omitempty"`
	SentLinks                  *int    `json:"sent_links,omitempty"                    yaml:"sent_links,omitempty"`
	LinksCheckingSpeed         *int    `json:"links_checking_speed,omitempty"          yaml:"links_checking_speed,omitempty"`
	Checked                    *int    `json:"checked,omitempty"                       yaml:"checked,omitempty"`
	DownloadQueueURL           *string `json:"download_queue_url,omitempty"            yaml:"download_queue_url,omitempty"`
	DownloadSentURL            *string `json:"download_sent_url,omitempty"             yaml:"download_sent_url,omitempty"`
	DownloadIndexedURL         *string `json:"download_indexed_url,omitempty"          yaml:"download_indexed_url,omitempty"`
	DownloadUnindexedURL       *string `json:"download_unindexed_url,omitempty"        yaml:"download_unindexed_url,omitempty"`
	DownloadAllURL             *string `json:"download_all_url,omitempty"              yaml:"download_all_url,omitempty"`
	DownloadCheckedURL         *string `json:"download_checked_url,omitempty"          yaml:"download_checked_url,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         flexInt    `json:"id"`
		Name       flexString `json:"name"`
		Type       flexString `json:"type"`
		Status     flexString `json:"status"`
		CreatedAt  flexString `json:"created_at"`
		LinksTotal count      `json:"links_total"`
		InQueue    count      `json:"in_queue"`
		Indexed    count      `json:"indexed"`
		NotIndexed count      `json:"not_indexed"`

		Website                    *string   `json:"website"`
		LinksType                  *string   `json:"links_type"`
		GoogleAccountAccessGranted *flexBool `json:"google_account_access_granted"`
		LinksSendingSpeed          *count    `json:"links_sending_speed"`
		LinksSentGoogle            *count    `json:"links_sent_google"`
		LinksSentYandex            *count    `json:"links_sent_yandex"`
		LinksSentBing              *count    `json:"links_sent_bing"`
		SentLinks                  *count    `json:"sent_links"`
		LinksCheckingSpeed         *count    `json:"links_checking_speed"`
		Checked                    *count    `json:"checked"`
		DownloadQueueURL           *string   `json:"download_queue_url"`
		DownloadSentURL            *string   `json:"download_sent_url"`
		DownloadIndexedURL         *string   `json:"download_indexed_url"`
		DownloadUnindexedURL       *string   `json:"download_unindexed_url"`
		DownloadAllURL             *string   `json:"download_all_url"`
		DownloadCheckedURL         *string   `json:"download_checked_url"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding project: %w", err)
	}

	*p = Project{
		ID:         int(raw.ID),
		Name:       string(raw.Name),
		Type:       string(raw.Type),
		Status:     string(raw.Status),
		CreatedAt:  string(raw.CreatedAt),
		LinksTotal: int(raw.LinksTotal),
		InQueue:    int(raw.InQueue),
		Indexed:    int(raw.Indexed),
		NotIndexed: int(raw.NotIndexed),

		Website:                    raw.Website,
		LinksType:                  raw.LinksType,
		GoogleAccountAccessGranted: boolPtr(raw.GoogleAccountAccessGranted),
		LinksSendingSpeed:          intPtr(raw.LinksSendingSpeed),
		LinksSentGoogle:            intPtr(raw.LinksSentGoogle),
		LinksSentYandex:            intPtr(raw.LinksSentYandex),
		LinksSentBing:              intPtr(raw.LinksSentBing),
		SentLinks:                  intPtr(raw.SentLinks),
		LinksCheckingSpeed:         intPtr(raw.LinksCheckingSpeed),
		Checked:                    intPtr(raw.Checked),
		DownloadQueueURL:           raw.DownloadQueueURL,
		DownloadSentURL:            raw.DownloadSentURL,
		DownloadIndexedURL:         raw.DownloadIndexedURL,
		DownloadUnindexedURL:       raw.DownloadUnindexedURL,
		DownloadAllURL:             raw.DownloadAllURL,
		DownloadCheckedURL:         raw.DownloadCheckedURL,
	}

	return nil
}

// IsIndexing reports whether the project submits links to search engines.
func (p *Project) IsIndexing() bool {
	return p.Type == ProjectTypeIndexing
}

// IsIndexingCheck reports whether the project checks indexation status.
func (p *Project) IsIndexingCheck() bool {
	return p.Type == ProjectTypeIndexingCheck
}

// LinkSource is a batch of submitted links or a sitemap tracked within a project.
// The processing fields are set together once the source has been processed.
type LinkSource struct {
	ID                  int      `json:"id"                    yaml:"id"`
	ProjectID           int      `json:"project_id"            yaml:"project_id"`
	Name                string   `json:"name"                  yaml:"name"`
	Type                string   `json:"type"                  yaml:"type"`
	CreatedAt           string   `json:"created_at"            yaml:"created_at"`
	Status              string   `json:"status"                yaml:"status"`
	IsPending           bool     `json:"is_pending"            yaml:"is_pending"`
	Watch               bool     `json:"watch"                 yaml:"watch"`
	GoogleAccessGranted bool     `json:"google_access_granted" yaml:"google_access_granted"`
	IsExternalLinks     bool     `json:"is_external_links"     yaml:"is_external_links"`
	SearchEngines       []string `json:"search_engines"        yaml:"search_engines"`

	ProcessingDate *string `json:"processing_date,omitempty" yaml:"processing_date,omitempty"`
	HasError       *bool   `json:"has_error,omitempty"       yaml:"has_error,omitempty"`
	ErrorMessage   *string `json:"error_message,omitempty"   yaml:"error_message,omitempty"`
	IsSuccess      *bool   `json:"is_success,omitempty"      yaml:"is_success,omitempty"`
	TotalLinks     *int    `json:"total_links,omitempty"     yaml:"total_links,omitempty"`
	AddedLinks     *int    `json:"added_links,omitempty"     yaml:"added_links,omitempty"`
	InvalidLinks   *int    `json:"invalid_links,omitempty"   yaml:"invalid_links,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *LinkSource) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                  flexInt     `json:"id"`
		ProjectID           flexInt     `json:"project_id"`
		Name                flexString  `json:"name"`
		Type                flexString  `json:"type"`
		CreatedAt           flexString  `json:"created_at"`
		Status              flexString  `json:"status"`
		IsPending           flexBool    `json:"is_pending"`
		Watch               flexBool    `json:"watch"`
		GoogleAccessGranted flexBool    `json:"google_access_granted"`
		IsExternalLinks     flexBool    `json:"is_external_links"`
		SearchEngines       flexStrings `json:"search_engines"`

		ProcessingDate *string   `json:"processing_date"`
		HasError       *flexBool `json:"has_error"`
		ErrorMessage   *string   `json:"error_message"`
		IsSuccess      *flexBool `json:"is_success"`
		TotalLinks     *count    `json:"total_links"`
		AddedLinks     *count    `json:"added_links"`
		InvalidLinks   *count    `json:"invalid_links"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding link source: %w", err)
	}

	engines := []string(raw.SearchEngines)
	if engines == nil {
		engines = []string{}
	}

	*s = LinkSource{
		ID:                  int(raw.ID),
		ProjectID:           int(raw.ProjectID),
		Name:                string(raw.Name),
		Type:                string(raw.Type),
		CreatedAt:           string(raw.CreatedAt),
		Status:              string(raw.Status),
		IsPending:           bool(raw.IsPending),
		Watch:               bool(raw.Watch),
		GoogleAccessGranted: bool(raw.GoogleAccessGranted),
		IsExternalLinks:     bool(raw.IsExternalLinks),
		SearchEngines:       engines,

		ProcessingDate: raw.ProcessingDate,
		HasError:       boolPtr(raw.HasError),
		ErrorMessage:   raw.ErrorMessage,
		IsSuccess:      boolPtr(raw.IsSuccess),
		TotalLinks:     intPtr(raw.TotalLinks),
		AddedLinks:     intPtr(raw.AddedLinks),
		InvalidLinks:   intPtr(raw.InvalidLinks),
	}

	return nil
}

// Processed reports whether the processing results are present.
func (s *LinkSource) Processed() bool {
	return s.ProcessingDate != nil || s.IsSuccess != nil || s.TotalLinks != nil
}

// AddedLinksSimpleResponse is returned by link/add_simple, which resolves (and
// may create) the target project by name.
type AddedLinksSimpleResponse struct {
	Success     bool   `json:"success"      yaml:"success"`
	Message     string `json:"message"      yaml:"message"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	ProjectID   int    `json:"project_id"   yaml:"project_id"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *AddedLinksSimpleResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success     flexBool   `json:"success"`
		Message     flexString `json:"message"`
		ProjectName flexString `json:"project_name"`
		ProjectID   flexInt    `json:"project_id"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding add links response: %w", err)
	}

	*r = AddedLinksSimpleResponse{
		Success:     bool(raw.Success),
		Message:     string(raw.Message),
		ProjectName: string(raw.ProjectName),
		ProjectID:   int(raw.ProjectID),
	}

	return nil
}

// SitemapWatchResponse is returned by sitemap/update_watch. A missing or
// null "success" reads as false.
type SitemapWatchResponse struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SitemapWatchResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success flexBool   `json:"success"`
		Message flexString `json:"message"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding update watch response: %w", err)
	}

	*r = SitemapWatchResponse{
		Success: bool(raw.Success),
		Message: string(raw.Message),
	}

	return nil
}

// SearchEngineTargets selects the search engines links are sent to.
type SearchEngineTargets struct {
	Google bool
	Yandex bool
	Bing   bool
}

// IndexingProjectCreateRequest represents a request to create an indexing project.
type IndexingProjectCreateRequest struct {
	Name             string
	Website          string
	ForExternalLinks bool
	// IndexingSpeed is omitted from the request when nil.
	IndexingSpeed *int
}

// IndexingCheckProjectCreateRequest represents a request to create an indexing-check project.
type IndexingCheckProjectCreateRequest struct {
	Name string
	// CheckingSpeed is omitted from the request when nil.
	CheckingSpeed *int
}

// LinksAddRequest submits links to a project identified by ID.
type LinksAddRequest struct {
	ProjectID int
	Links     Links
	SearchEngineTargets
	GoogleAccessGranted bool
}

// LinksAddSimpleRequest submits links to a project identified by name. An
// empty ProjectName means "default".
type LinksAddSimpleRequest struct {
	ProjectName string
	Links       Links
	SearchEngineTargets
	GoogleAccessGranted bool
}

// SitemapAddRequest adds a sitemap to a project.
type SitemapAddRequest struct {
	ProjectID  int
	SitemapURL string
	SearchEngineTargets
	GoogleAccessGranted bool
	Watch               bool
}

// Int returns a pointer to v, for optional request fields.
func Int(v int) *int {
	return &v
}
