package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DOI registry endpoints.
const (
	crossrefAPIURL = "https://api.crossref.org/works"
	dataciteAPIURL = "https://api.datacite.org/dois"
)

// DOIStatus is the per-record entry of a health report.
type DOIStatus struct {
	DOI      string   `json:"doi"`
	Title    string   `json:"title"`
	Problems []string `json:"problems,omitempty"`
	Status   string   `json:"status"` // ok|issues
}

// DOIHealthSummary aggregates the report.
type DOIHealthSummary struct {
	TotalDOIs  int  `json:"total_dois"`
	SampleSize int  `json:"sample_size"`
	WithIssues int  `json:"with_issues"`
	HasIssues  bool `json:"has_issues"`
}

// DOIHealthReport is the result of checking one organization against one
// registry.
type DOIHealthReport struct {
	Service        string           `json:"service"`
	OrganizationID string           `json:"organization_id"`
	Timestamp      time.Time        `json:"timestamp"`
	Summary        DOIHealthSummary `json:"summary"`
	DOIs           []DOIStatus      `json:"dois"`
}

// DOIService is a stateless client for the CrossRef and DataCite registries.
// It checks DOI records for missing bibliographic metadata.
type DOIService struct {
	client *resty.Client
}

func NewDOIService() *DOIService {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", "JournalSubmissionAPI/1.0 (mailto:support@easyjournal.org)")
	return &DOIService{client: client}
}

// HealthReport fetches up to 100 DOI records for the organization from the
// chosen registry ("crossref" or "datacite") and flags incomplete metadata.
func (s *DOIService) HealthReport(ctx context.Context, organizationID, service string) (*DOIHealthReport, error) {
	switch strings.ToLower(service) {
	case "crossref":
		return s.crossrefReport(ctx, organizationID)
	case "datacite":
		return s.dataciteReport(ctx, organizationID)
	}
	return nil, fmt.Errorf("unsupported DOI service: %s", service)
}

type crossrefResponse struct {
	Message struct {
		TotalResults int `json:"total-results"`
		Items        []struct {
			DOI             string     `json:"DOI"`
			Title           []string   `json:"title"`
			Author          []struct{} `json:"author"`
			PublishedOnline *struct{}  `json:"published-online"`
			PublishedPrint  *struct{}  `json:"published-print"`
		} `json:"items"`
	} `json:"message"`
}

func (s *DOIService) crossrefReport(ctx context.Context, organizationID string) (*DOIHealthReport, error) {
	// A "10."-prefixed identifier is a DOI prefix, anything else a member ID.
	filter := "member:" + organizationID
	if strings.HasPrefix(organizationID, "10.") {
		filter = "prefix:" + organizationID
	}

	var out crossrefResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("filter", filter).
		SetQueryParam("rows", "100").
		SetResult(&out).
		Get(crossrefAPIURL)
	if err != nil {
		return nil, fmt.Errorf("crossref request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("crossref request failed with status %d", resp.StatusCode())
	}

	report := &DOIHealthReport{
		Service:        "CrossRef",
		OrganizationID: organizationID,
		Timestamp:      time.Now().UTC(),
	}
	report.Summary.TotalDOIs = out.Message.TotalResults
	report.Summary.SampleSize = len(out.Message.Items)

	for _, item := range out.Message.Items {
		status := DOIStatus{DOI: item.DOI, Title: "Untitled", Status: "ok"}
		if len(item.Title) > 0 {
			status.Title = item.Title[0]
		} else {
			status.Problems = append(status.Problems, "Missing title")
		}
		if len(item.Author) == 0 {
			status.Problems = append(status.Problems, "Missing authors")
		}
		if item.PublishedOnline == nil && item.PublishedPrint == nil {
			status.Problems = append(status.Problems, "Missing publication date")
		}
		if len(status.Problems) > 0 {
			status.Status = "issues"
			report.Summary.WithIssues++
		}
		report.DOIs = append(report.DOIs, status)
	}
	report.Summary.HasIssues = report.Summary.WithIssues > 0

	return report, nil
}

type dataciteResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			Titles []struct {
				Title string `json:"title"`
			} `json:"titles"`
			Creators []struct{} `json:"creators"`
			Dates    []struct{} `json:"dates"`
		} `json:"attributes"`
	} `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func (s *DOIService) dataciteReport(ctx context.Context, organizationID string) (*DOIHealthReport, error) {
	var out dataciteResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("client-id", organizationID).
		SetQueryParam("page[size]", "100").
		SetResult(&out).
		Get(dataciteAPIURL)
	if err != nil {
		return nil, fmt.Errorf("datacite request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("datacite request failed with status %d", resp.StatusCode())
	}

	report := &DOIHealthReport{
		Service:        "DataCite",
		OrganizationID: organizationID,
		Timestamp:      time.Now().UTC(),
	}
	report.Summary.TotalDOIs = out.Meta.Total
	report.Summary.SampleSize = len(out.Data)

	for _, item := range out.Data {
		status := DOIStatus{DOI: item.ID, Title: "Untitled", Status: "ok"}
		if len(item.Attributes.Titles) > 0 && item.Attributes.Titles[0].Title != "" {
			status.Title = item.Attributes.Titles[0].Title
		} else {
			status.Problems = append(status.Problems, "Missing title")
		}
		if len(item.Attributes.Creators) == 0 {
			status.Problems = append(status.Problems, "Missing creators")
		}
		if len(item.Attributes.Dates) == 0 {
			status.Problems = append(status.Problems, "Missing dates")
		}
		if len(status.Problems) > 0 {
			status.Status = "issues"
			report.Summary.WithIssues++
		}
		report.DOIs = append(report.DOIs, status)
	}
	report.Summary.HasIssues = report.Summary.WithIssues > 0

	return report, nil
}
