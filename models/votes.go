// ABOUTME: Vote scoring and introduction qualification rules
// ABOUTME: Summarize builds a VoteSummary; QualifiesForIntroduction and SortCandidates drive the intro queue
package models

import "sort"

// Summarize tallies votes for a single deal. An empty slice yields a zero
// summary, never nil.
func Summarize(votes []Vote) *VoteSummary {
	s := &VoteSummary{}
	for _, v := range votes {
		s.TotalVotes++
		switch v.ConvictionLevel {
		case ConvictionNo:
			s.Conviction1++
		case ConvictionFollowPack:
			s.Conviction2++
		case ConvictionStrongYes:
			s.Conviction3++
		case ConvictionStrongYesIncrease:
			s.Conviction4++
		}
		if v.StrongNo {
			s.StrongNoCount++
		}
		if v.ReviewStatus == ReviewStatusToReview {
			s.ToReviewCount++
		}
	}
	s.NetScore = s.Conviction3 + s.Conviction4 - s.StrongNoCount
	return s
}

func IsValidConviction(level int) bool {
	return level >= ConvictionNo && level <= ConvictionStrongYesIncrease
}

var qualifyingPilotResponses = map[string]bool{
	PilotHellYes:                  true,
	PilotVeryInterested:           true,
	PilotInterestedWithConditions: true,
}

var qualifyingBuyingResponses = map[string]bool{
	BuyingAbsolutely: true,
	BuyingVeryLikely: true,
	BuyingProbably:   true,
}

// QualifiesForIntroduction reports whether the vote's current signals make the
// LP worth introducing to the founders.
func (v Vote) QualifiesForIntroduction() bool {
	if v.PilotCustomerInterest && qualifyingPilotResponses[v.PilotCustomerResponse] {
		return true
	}
	if v.WouldBuy && qualifyingBuyingResponses[v.BuyingInterestResponse] {
		return true
	}
	return v.ConvictionLevel >= ConvictionStrongYes
}

func introTier(status string) int {
	switch status {
	case "", IntroStatusPending:
		return 0
	case IntroStatusSent:
		return 1
	default:
		return 2
	}
}

// SortCandidates orders unactioned requests first, then sent, then the rest,
// newest vote first within each tier.
func SortCandidates(candidates []IntroductionCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := introTier(candidates[i].Status()), introTier(candidates[j].Status())
		if ti != tj {
			return ti < tj
		}
		return candidates[i].Vote.CreatedAt.After(candidates[j].Vote.CreatedAt)
	})
}
