// ABOUTME: Tests for the deal evaluation pipeline service
// ABOUTME: Covers stage stamping, vote merge, summaries, introduction derivation and error kinds
package pipeline

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func setupService(t *testing.T, opts ...Option) (*Service, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewService(setupTestDB(t), nil, opts...), clock
}

func ptr[T any](v T) *T { return &v }

func createDeal(t *testing.T, s *Service, name, stage string) *models.Deal {
	t.Helper()
	in := DealInput{CompanyName: ptr(name)}
	if stage != "" {
		in.Stage = ptr(stage)
	}
	deal, err := s.CreateDeal(context.Background(), in)
	require.NoError(t, err)
	return deal
}

func createLP(t *testing.T, s *Service, name string) *models.LP {
	t.Helper()
	lp := &models.LP{Name: name, Email: name + "@lp.example"}
	require.NoError(t, s.AddLP(context.Background(), lp))
	return lp
}

func TestCreateDealDefaultsToSourcing(t *testing.T) {
	s, _ := setupService(t)

	deal := createDeal(t, s, "Acme", "")
	assert.Equal(t, models.StageSourcing, deal.Stage)
	assert.Equal(t, "USD", deal.Currency)
	assert.Nil(t, deal.SourcingMeetingBookedAt)
	assert.Nil(t, deal.PartnerReviewStartedAt)
	assert.Nil(t, deal.CloseDate)
}

func TestCreateDealInPartnerReviewStampsAndStaysStable(t *testing.T) {
	s, clock := setupService(t)
	ctx := context.Background()
	created := clock.Now()

	deal := createDeal(t, s, "Acme", models.StagePartnerReview)
	require.NotNil(t, deal.PartnerReviewStartedAt)
	assert.True(t, deal.PartnerReviewStartedAt.Equal(created))

	clock.Advance(48 * time.Hour)
	updated, err := s.UpdateDeal(ctx, deal.ID, DealInput{Stage: ptr(models.StagePartnerReview), Sector: ptr("climate")})
	require.NoError(t, err)
	assert.True(t, updated.PartnerReviewStartedAt.Equal(created), "unchanged stage must not move the stamp")

	detail, err := s.GetDeal(ctx, deal.ID, GetDealOptions{})
	require.NoError(t, err)
	require.NotNil(t, detail.PartnerReviewStartedAt)
	assert.True(t, detail.PartnerReviewStartedAt.Equal(created))
	assert.Equal(t, "climate", detail.Sector)
}

func TestUpdateDealExplicitTimestampOverridesStamp(t *testing.T) {
	s, _ := setupService(t)
	deal := createDeal(t, s, "Acme", models.StageOffer)

	updated, err := s.UpdateDeal(context.Background(), deal.ID, DealInput{
		Stage:     ptr(models.StageSignedAndWired),
		CloseDate: ptr("2026-01-15T00:00:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CloseDate)
	assert.True(t, updated.CloseDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestUpdateDealStampsOnEntry(t *testing.T) {
	s, clock := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")

	clock.Advance(time.Hour)
	booked := clock.Now()
	updated, err := s.UpdateDeal(ctx, deal.ID, DealInput{Stage: ptr(models.StageSourcingMeetingBooked)})
	require.NoError(t, err)
	require.NotNil(t, updated.SourcingMeetingBookedAt)
	assert.True(t, updated.SourcingMeetingBookedAt.Equal(booked))

	// Leaving and re-entering keeps the first stamp
	clock.Advance(time.Hour)
	_, err = s.UpdateDeal(ctx, deal.ID, DealInput{Stage: ptr(models.StageSourcing)})
	require.NoError(t, err)
	clock.Advance(time.Hour)
	updated, err = s.UpdateDeal(ctx, deal.ID, DealInput{Stage: ptr(models.StageSourcingMeetingBooked)})
	require.NoError(t, err)
	assert.True(t, updated.SourcingMeetingBookedAt.Equal(booked))
}

func TestUpdateDealPreservesOmittedFields(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	deal, err := s.CreateDeal(ctx, DealInput{
		CompanyName: ptr("Acme"),
		Sector:      ptr("fintech"),
		RoundSize:   ptr(int64(500000000)),
		Website:     ptr("https://acme.example"),
	})
	require.NoError(t, err)

	updated, err := s.UpdateDeal(ctx, deal.ID, DealInput{Description: ptr("Payments infra")})
	require.NoError(t, err)

	assert.Equal(t, "Acme", updated.CompanyName)
	assert.Equal(t, "fintech", updated.Sector)
	assert.Equal(t, int64(500000000), updated.RoundSize)
	assert.Equal(t, "https://acme.example", updated.Website)
	assert.Equal(t, "Payments infra", updated.Description)
	assert.Equal(t, models.StageSourcing, updated.Stage)
}

func TestUpdateDealMalformedTimestampKeepsStoredValue(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	deal, err := s.CreateDeal(ctx, DealInput{CompanyName: ptr("Acme"), CloseDate: ptr("2026-02-01")})
	require.NoError(t, err)
	require.NotNil(t, deal.CloseDate)

	updated, err := s.UpdateDeal(ctx, deal.ID, DealInput{CloseDate: ptr("next tuesday"), Sector: ptr("ai")})
	require.NoError(t, err)
	require.NotNil(t, updated.CloseDate)
	assert.True(t, updated.CloseDate.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "ai", updated.Sector)
}

func TestUpdateDealNotFoundWritesNothing(t *testing.T) {
	s, _ := setupService(t)

	_, err := s.UpdateDeal(context.Background(), uuid.New(), DealInput{Stage: ptr(models.StageOffer)})
	assert.ErrorIs(t, err, ErrNotFound)

	deals, err := s.FindDeals(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestDealValidation(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	_, err := s.CreateDeal(ctx, DealInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateDeal(ctx, DealInput{CompanyName: ptr("Acme"), Stage: ptr("closed_won")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	deal := createDeal(t, s, "Acme", "")
	_, err = s.UpdateDeal(ctx, deal.ID, DealInput{CompanyName: ptr(" ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.FindDeals(ctx, "bogus", 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitVoteMergesFields(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "alice")

	first, err := s.SubmitVote(ctx, models.VoteInput{
		DealID:                deal.ID,
		LPID:                  lp.ID,
		ConvictionLevel:       ptr(3),
		PilotCustomerInterest: ptr(true),
		PilotCustomerResponse: ptr(models.PilotVeryInterested),
		Comment:               ptr("Great team"),
	})
	require.NoError(t, err)

	second, err := s.SubmitVote(ctx, models.VoteInput{
		DealID:   deal.ID,
		LPID:     lp.ID,
		StrongNo: ptr(true),
		Comment:  ptr("Changed my mind on the market"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resubmission must update the same row")
	assert.Equal(t, 3, second.ConvictionLevel)
	assert.True(t, second.PilotCustomerInterest)
	assert.Equal(t, models.PilotVeryInterested, second.PilotCustomerResponse)
	assert.True(t, second.StrongNo)
	assert.Equal(t, "Changed my mind on the market", second.Comment)

	votes, err := s.ListVotes(ctx, deal.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestSubmitVoteValidation(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "alice")

	_, err := s.SubmitVote(ctx, models.VoteInput{LPID: lp.ID, ConvictionLevel: ptr(3)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, ConvictionLevel: ptr(3)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: ptr(5)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, BuyingInterestResponse: ptr("maybe?")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: uuid.New(), LPID: lp.ID, ConvictionLevel: ptr(2)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: uuid.New(), ConvictionLevel: ptr(2)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetDealVoteSummary(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")

	detail, err := s.GetDeal(ctx, deal.ID, GetDealOptions{IncludeVotes: true})
	require.NoError(t, err)
	require.NotNil(t, detail.VoteSummary, "zero-vote deals still get a summary")
	assert.Equal(t, models.VoteSummary{}, *detail.VoteSummary)

	for i, level := range []int{1, 2, 3, 3, 4} {
		lp := createLP(t, s, string(rune('a'+i)))
		_, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: ptr(level)})
		require.NoError(t, err)
	}

	detail, err = s.GetDeal(ctx, deal.ID, GetDealOptions{IncludeVotes: true})
	require.NoError(t, err)
	assert.Equal(t, 5, detail.VoteSummary.TotalVotes)
	assert.Equal(t, 3, detail.VoteSummary.NetScore)

	naysayer := createLP(t, s, "naysayer")
	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: naysayer.ID, ConvictionLevel: ptr(2), StrongNo: ptr(true), ReviewStatus: ptr(models.ReviewStatusToReview)})
	require.NoError(t, err)

	detail, err = s.GetDeal(ctx, deal.ID, GetDealOptions{IncludeVotes: true})
	require.NoError(t, err)
	assert.Equal(t, 2, detail.VoteSummary.NetScore)
	assert.Equal(t, 1, detail.VoteSummary.StrongNoCount)
	assert.Equal(t, 1, detail.VoteSummary.ToReviewCount)
}

func TestGetDealFounders(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")

	require.NoError(t, s.AddFounder(ctx, &models.Founder{DealID: deal.ID, Name: "Ada", Email: "ada@acme.example"}))
	assert.ErrorIs(t, s.AddFounder(ctx, &models.Founder{DealID: uuid.New(), Name: "Ghost"}), ErrNotFound)
	assert.ErrorIs(t, s.AddFounder(ctx, &models.Founder{DealID: deal.ID}), ErrInvalidInput)

	detail, err := s.GetDeal(ctx, deal.ID, GetDealOptions{IncludeFounders: true})
	require.NoError(t, err)
	require.Len(t, detail.Founders, 1)
	assert.Equal(t, "Ada", detail.Founders[0].Name)
	assert.Nil(t, detail.VoteSummary)

	_, err = s.GetDeal(ctx, uuid.New(), GetDealOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func candidateIDs(cs []models.IntroductionCandidate) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.Vote.ID)
	}
	return ids
}

func TestIntroductionQualificationAndManualOverride(t *testing.T) {
	s, clock := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	keen := createLP(t, s, "keen")
	lukewarm := createLP(t, s, "lukewarm")

	keenVote, err := s.SubmitVote(ctx, models.VoteInput{
		DealID:                deal.ID,
		LPID:                  keen.ID,
		ConvictionLevel:       ptr(1),
		PilotCustomerInterest: ptr(true),
		PilotCustomerResponse: ptr(models.PilotHellYes),
	})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	lukewarmVote, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lukewarm.ID, ConvictionLevel: ptr(2)})
	require.NoError(t, err)

	candidates, err := s.ListIntroductionCandidates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{keenVote.ID}, candidateIDs(candidates))
	assert.Equal(t, "Acme", candidates[0].CompanyName)
	assert.Equal(t, "keen", candidates[0].LPName)
	assert.Nil(t, candidates[0].Introduction)

	intro, vote, err := s.CreateManualIntroduction(ctx, lukewarm.ID, deal.ID, "Worth a chat")
	require.NoError(t, err)
	assert.Equal(t, lukewarmVote.ID, vote.ID, "existing vote is reused")
	assert.Equal(t, 2, vote.ConvictionLevel)
	assert.Equal(t, models.IntroStatusPending, intro.Status)

	candidates, err = s.ListIntroductionCandidates(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{keenVote.ID, lukewarmVote.ID}, candidateIDs(candidates))
}

func TestIntroductionLiveRequalification(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "buyer")

	_, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, WouldBuy: ptr(true), BuyingInterestResponse: ptr(models.BuyingAbsolutely)})
	require.NoError(t, err)

	candidates, err := s.ListIntroductionCandidates(ctx)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)

	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, BuyingInterestResponse: ptr(models.BuyingUnlikely)})
	require.NoError(t, err)

	candidates, err = s.ListIntroductionCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestManualIntroductionCreatesPlaceholderVote(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "quiet")

	intro, vote, err := s.CreateManualIntroduction(ctx, lp.ID, deal.ID, "Please connect")
	require.NoError(t, err)
	assert.Equal(t, models.ConvictionStrongYes, vote.ConvictionLevel)
	assert.Equal(t, models.PlaceholderVoteComment, vote.Comment)
	assert.Equal(t, vote.ID, intro.VoteID)
	assert.Equal(t, "Please connect", intro.Message)
	assert.Equal(t, models.IntroStatusPending, intro.Status)

	// Calling again reuses both rows
	intro2, vote2, err := s.CreateManualIntroduction(ctx, lp.ID, deal.ID, "Second note")
	require.NoError(t, err)
	assert.Equal(t, vote.ID, vote2.ID)
	assert.Equal(t, intro.ID, intro2.ID)
	assert.Equal(t, "Second note", intro2.Message)

	_, _, err = s.CreateManualIntroduction(ctx, uuid.Nil, deal.ID, "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = s.CreateManualIntroduction(ctx, uuid.New(), deal.ID, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManualIntroductionKeepsSettledStatus(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "lp")

	_, vote, err := s.CreateManualIntroduction(ctx, lp.ID, deal.ID, "first")
	require.NoError(t, err)
	_, err = s.SendIntroduction(ctx, vote.ID, "sent message", nil)
	require.NoError(t, err)

	intro, _, err := s.CreateManualIntroduction(ctx, lp.ID, deal.ID, "again")
	require.NoError(t, err)
	assert.Equal(t, models.IntroStatusSent, intro.Status, "a settled request never returns to pending")
	assert.NotNil(t, intro.SentAt)
}

func TestSendIntroductionIsIdempotent(t *testing.T) {
	s, clock := setupService(t)
	box := outbox.New(s.db)
	s.sender = box

	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "lp")
	vote, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: ptr(4)})
	require.NoError(t, err)

	first, err := s.SendIntroduction(ctx, vote.ID, "hello", []string{"lp@lp.example", " "})
	require.NoError(t, err)
	assert.Equal(t, models.IntroStatusSent, first.Status)

	clock.Advance(time.Hour)
	second, err := s.SendIntroduction(ctx, vote.ID, "hello again", nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "no duplicate request rows")
	assert.Equal(t, models.IntroStatusSent, second.Status)
	assert.Equal(t, "hello again", second.Message)
	require.NotNil(t, second.SentAt)
	assert.True(t, second.SentAt.Equal(clock.Now()))

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM introduction_requests WHERE vote_id = ?`, vote.ID.String()).Scan(&rows))
	assert.Equal(t, 1, rows)

	emails, err := box.List(ctx, vote.ID)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, []string{"lp@lp.example"}, emails[0].Recipients)
	assert.Equal(t, "Introduction: Acme", emails[0].Subject)
}

func TestDeclineIntroduction(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "lp")
	vote, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: ptr(3)})
	require.NoError(t, err)

	intro, err := s.DeclineIntroduction(ctx, vote.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IntroStatusDeclined, intro.Status)
	assert.NotNil(t, intro.DeclinedAt)
	assert.Nil(t, intro.SentAt)

	_, err = s.DeclineIntroduction(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.SendIntroduction(ctx, uuid.New(), "x", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIntroductionCandidateOrdering(t *testing.T) {
	s, clock := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")

	submit := func(name string) *models.Vote {
		clock.Advance(time.Minute)
		lp := createLP(t, s, name)
		v, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: ptr(3)})
		require.NoError(t, err)
		return v
	}

	declined := submit("declined")
	sent := submit("sent")
	untouched := submit("untouched")
	pending := submit("pending")

	_, err := s.DeclineIntroduction(ctx, declined.ID)
	require.NoError(t, err)
	_, err = s.SendIntroduction(ctx, sent.ID, "hi", nil)
	require.NoError(t, err)
	_, _, err = s.CreateManualIntroduction(ctx, pending.LPID, deal.ID, "later")
	require.NoError(t, err)

	candidates, err := s.ListIntroductionCandidates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{pending.ID, untouched.ID, sent.ID, declined.ID}, candidateIDs(candidates))
}

func TestDeleteLPCascadesVotes(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "leaving")
	other := createLP(t, s, "staying")

	vote, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: ptr(4)})
	require.NoError(t, err)
	_, err = s.SendIntroduction(ctx, vote.ID, "hi", nil)
	require.NoError(t, err)
	_, err = s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: other.ID, ConvictionLevel: ptr(2)})
	require.NoError(t, err)

	removed, err := s.DeleteLP(ctx, lp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	votes, err := s.ListVotes(ctx, deal.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, other.ID, votes[0].LPID)

	candidates, err := s.ListIntroductionCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	_, err = s.DeleteLP(ctx, lp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDealRefusedWhileVotesExist(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	deal := createDeal(t, s, "Acme", "")
	lp := createLP(t, s, "lp")

	vote, err := s.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: ptr(2)})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteDeal(ctx, deal.ID), ErrConflict)

	require.NoError(t, s.DeleteVote(ctx, vote.ID))
	require.NoError(t, s.DeleteDeal(ctx, deal.ID))

	_, err = s.GetDeal(ctx, deal.ID, GetDealOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteDeal(ctx, deal.ID), ErrNotFound)
	assert.ErrorIs(t, s.DeleteVote(ctx, vote.ID), ErrNotFound)
}

func TestPipelineSummary(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()
	a := createDeal(t, s, "A", models.StagePartnerReview)
	createDeal(t, s, "B", models.StagePartnerReview)
	createDeal(t, s, "C", models.StageOffer)
	lp := createLP(t, s, "lp")

	_, err := s.SubmitVote(ctx, models.VoteInput{DealID: a.ID, LPID: lp.ID, ConvictionLevel: ptr(4)})
	require.NoError(t, err)

	counts, err := s.PipelineSummary(ctx)
	require.NoError(t, err)
	require.Len(t, counts, len(models.Stages))

	byStage := map[string]models.StageCount{}
	for _, c := range counts {
		byStage[c.Stage] = c
	}
	assert.Equal(t, 2, byStage[models.StagePartnerReview].Count)
	assert.Equal(t, 1, byStage[models.StagePartnerReview].NetScore)
	assert.Equal(t, 1, byStage[models.StageOffer].Count)
	assert.Equal(t, 0, byStage[models.StageSourcing].Count)
	assert.Equal(t, models.StageSourcing, counts[0].Stage)
}

func TestParseHelpers(t *testing.T) {
	_, err := ParseID("deal_id", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseID("deal_id", "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)

	id := uuid.New()
	parsed, err := ParseID("deal_id", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	ts, err := ParseTimestamp("2026-04-01")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))

	_, err = ParseTimestamp("04/01/2026")
	assert.Error(t, err)
}
