package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/docut-go/pkg/docut"
)

// Event types carried in Event.Type and the event_type message attribute.
const (
	EventLinkCreated     = "link.created"
	EventMetricsSnapshot = "metrics.snapshot"
)

// Event represents the payload published downstream.
type Event struct {
	ID        string             `json:"id"`
	Type      string             `json:"type"`
	SourceURL string             `json:"source_url,omitempty"`
	Link      *docut.LinkWithSeo `json:"link,omitempty"`
	Metrics   *MetricsSnapshot   `json:"metrics,omitempty"`
	EmittedAt time.Time          `json:"emitted_at"`
}

// MetricsSnapshot groups every analytics breakdown fetched in one report run.
type MetricsSnapshot struct {
	Visitors  []docut.VisitorsPoint `json:"visitors"`
	Devices   []docut.DeviceTotal   `json:"devices"`
	OS        []docut.OSTotal       `json:"os"`
	Countries []docut.CountryTotal  `json:"countries"`
	Browsers  []docut.BrowserTotal  `json:"browsers"`
	Cities    []docut.CityTotal     `json:"cities"`
}

// NewLinkCreatedEvent announces a link shortened from sourceURL.
func NewLinkCreatedEvent(sourceURL string, link docut.LinkWithSeo) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventLinkCreated,
		SourceURL: sourceURL,
		Link:      &link,
		EmittedAt: time.Now().UTC(),
	}
}

// NewMetricsSnapshotEvent wraps a finished snapshot.
func NewMetricsSnapshotEvent(snapshot MetricsSnapshot) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventMetricsSnapshot,
		Metrics:   &snapshot,
		EmittedAt: time.Now().UTC(),
	}
}
