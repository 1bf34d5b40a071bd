// ABOUTME: Deal stage constants and the stage transition rule
// ABOUTME: ApplyStageTransition stamps milestone timestamps when a deal enters a stage
package models

import "time"

const (
	StageSourcing                    = "sourcing"
	StageSourcingReachedOut          = "sourcing_reached_out"
	StageSourcingMeetingBooked       = "sourcing_meeting_booked"
	StageSourcingMeetingDoneDeciding = "sourcing_meeting_done_deciding"
	StagePartnerReview               = "partner_review"
	StageOffer                       = "offer"
	StageSigned                      = "signed"
	StageSignedAndWired              = "signed_and_wired"
	StageClosedLostPassed            = "closed_lost_passed"
	StageClosedLostRejected          = "closed_lost_rejected"
)

// Stages lists every stage in pipeline order, lost stages last.
var Stages = []string{
	StageSourcing,
	StageSourcingReachedOut,
	StageSourcingMeetingBooked,
	StageSourcingMeetingDoneDeciding,
	StagePartnerReview,
	StageOffer,
	StageSigned,
	StageSignedAndWired,
	StageClosedLostPassed,
	StageClosedLostRejected,
}

func IsValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsTerminalStage reports whether no further pipeline movement is expected.
func IsTerminalStage(stage string) bool {
	switch stage {
	case StageSignedAndWired, StageClosedLostPassed, StageClosedLostRejected:
		return true
	}
	return false
}

// StageTimestamps are the milestone timestamps owned by the stage machine.
type StageTimestamps struct {
	SourcingMeetingBookedAt *time.Time
	PartnerReviewStartedAt  *time.Time
	CloseDate               *time.Time
}

// Timestamps returns the deal's current milestone timestamps.
func (d *Deal) Timestamps() StageTimestamps {
	return StageTimestamps{
		SourcingMeetingBookedAt: d.SourcingMeetingBookedAt,
		PartnerReviewStartedAt:  d.PartnerReviewStartedAt,
		CloseDate:               d.CloseDate,
	}
}

// SetTimestamps overwrites the deal's milestone timestamps.
func (d *Deal) SetTimestamps(ts StageTimestamps) {
	d.SourcingMeetingBookedAt = ts.SourcingMeetingBookedAt
	d.PartnerReviewStartedAt = ts.PartnerReviewStartedAt
	d.CloseDate = ts.CloseDate
}

// ApplyStageTransition returns the timestamps after moving from prev to next.
// Entering a milestone stage stamps its timestamp with now unless it is
// already set. Nothing changes when the stage does not change, and a set
// timestamp is never cleared.
func ApplyStageTransition(prev, next string, ts StageTimestamps, now time.Time) StageTimestamps {
	if prev == next {
		return ts
	}

	stamp := now
	switch next {
	case StageSourcingMeetingBooked:
		if ts.SourcingMeetingBookedAt == nil {
			ts.SourcingMeetingBookedAt = &stamp
		}
	case StagePartnerReview:
		if ts.PartnerReviewStartedAt == nil {
			ts.PartnerReviewStartedAt = &stamp
		}
	case StageSignedAndWired:
		if ts.CloseDate == nil {
			ts.CloseDate = &stamp
		}
	}
	return ts
}

// Apply overlays the non-nil fields of u onto d. Stage timestamps supplied in
// u are applied after the transition rule so the caller's value wins.
func (u DealUpdate) Apply(d *Deal, now time.Time) {
	if u.CompanyName != nil {
		d.CompanyName = *u.CompanyName
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.Website != nil {
		d.Website = *u.Website
	}
	if u.Sector != nil {
		d.Sector = *u.Sector
	}
	if u.RoundSize != nil {
		d.RoundSize = *u.RoundSize
	}
	if u.Valuation != nil {
		d.Valuation = *u.Valuation
	}
	if u.CheckSize != nil {
		d.CheckSize = *u.CheckSize
	}
	if u.Currency != nil {
		d.Currency = *u.Currency
	}
	if u.Source != nil {
		d.Source = *u.Source
	}

	prev := d.Stage
	if u.Stage != nil {
		d.Stage = *u.Stage
	}
	d.SetTimestamps(ApplyStageTransition(prev, d.Stage, d.Timestamps(), now))

	if u.SourcingMeetingBookedAt != nil {
		d.SourcingMeetingBookedAt = u.SourcingMeetingBookedAt
	}
	if u.PartnerReviewStartedAt != nil {
		d.PartnerReviewStartedAt = u.PartnerReviewStartedAt
	}
	if u.CloseDate != nil {
		d.CloseDate = u.CloseDate
	}
}
