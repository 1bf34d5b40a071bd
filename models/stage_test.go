// ABOUTME: Tests for the stage transition rule
// ABOUTME: Covers milestone stamping, unchanged stages, and caller-supplied overrides
package models

import (
	"testing"
	"time"
)

func TestApplyStageTransitionStampsMilestones(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		next  string
		check func(StageTimestamps) *time.Time
	}{
		{StageSourcingMeetingBooked, func(ts StageTimestamps) *time.Time { return ts.SourcingMeetingBookedAt }},
		{StagePartnerReview, func(ts StageTimestamps) *time.Time { return ts.PartnerReviewStartedAt }},
		{StageSignedAndWired, func(ts StageTimestamps) *time.Time { return ts.CloseDate }},
	}

	for _, tc := range cases {
		ts := ApplyStageTransition(StageSourcing, tc.next, StageTimestamps{}, now)
		got := tc.check(ts)
		if got == nil || !got.Equal(now) {
			t.Errorf("entering %s: expected stamp %v, got %v", tc.next, now, got)
		}
	}
}

func TestApplyStageTransitionKeepsExistingStamp(t *testing.T) {
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := earlier.AddDate(1, 0, 0)

	ts := ApplyStageTransition(StageOffer, StagePartnerReview, StageTimestamps{PartnerReviewStartedAt: &earlier}, now)
	if !ts.PartnerReviewStartedAt.Equal(earlier) {
		t.Errorf("expected existing stamp to be kept, got %v", ts.PartnerReviewStartedAt)
	}
}

func TestApplyStageTransitionInertStages(t *testing.T) {
	now := time.Now()

	ts := ApplyStageTransition(StageSourcing, StageOffer, StageTimestamps{}, now)
	if ts.SourcingMeetingBookedAt != nil || ts.PartnerReviewStartedAt != nil || ts.CloseDate != nil {
		t.Errorf("expected no stamps for inert transition, got %+v", ts)
	}

	ts = ApplyStageTransition(StagePartnerReview, StagePartnerReview, StageTimestamps{}, now)
	if ts.PartnerReviewStartedAt != nil {
		t.Error("unchanged stage must not stamp")
	}
}

func TestDealUpdateApplyPartial(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deal := &Deal{CompanyName: "Acme", Sector: "fintech", Stage: StageSourcing, RoundSize: 100}

	stage := StagePartnerReview
	DealUpdate{Stage: &stage}.Apply(deal, created)

	if deal.CompanyName != "Acme" || deal.Sector != "fintech" || deal.RoundSize != 100 {
		t.Errorf("omitted fields changed: %+v", deal)
	}
	if deal.PartnerReviewStartedAt == nil || !deal.PartnerReviewStartedAt.Equal(created) {
		t.Fatalf("expected partner review stamp, got %v", deal.PartnerReviewStartedAt)
	}

	// Same stage again, later: the stamp is untouched
	DealUpdate{Stage: &stage}.Apply(deal, created.Add(time.Hour))
	if !deal.PartnerReviewStartedAt.Equal(created) {
		t.Errorf("stamp moved on unchanged stage: %v", deal.PartnerReviewStartedAt)
	}
}

func TestDealUpdateApplyCallerTimestampWins(t *testing.T) {
	now := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	explicit := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	deal := &Deal{Stage: StageOffer}

	stage := StageSignedAndWired
	DealUpdate{Stage: &stage, CloseDate: &explicit}.Apply(deal, now)

	if !deal.CloseDate.Equal(explicit) {
		t.Errorf("expected caller close date %v, got %v", explicit, deal.CloseDate)
	}
}

func TestIsValidStage(t *testing.T) {
	for _, s := range Stages {
		if !IsValidStage(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if IsValidStage("closed_won") {
		t.Error("closed_won is not a pipeline stage")
	}
	if !IsTerminalStage(StageClosedLostPassed) || IsTerminalStage(StageOffer) {
		t.Error("terminal stage classification is wrong")
	}
}
