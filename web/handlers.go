// ABOUTME: HTTP handlers for deals, LPs, votes and introductions
// ABOUTME: Parse path, query and body, call the pipeline service, and render JSON
package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
)

func (s *Server) pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := pipeline.ParseID(param, c.Param(param))
	if err != nil {
		s.respondServiceError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// bind decodes an optional JSON body. An empty body leaves v untouched.
func (s *Server) bind(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) createDeal(c *gin.Context) {
	var in pipeline.DealInput
	if !s.bind(c, &in) {
		return
	}
	deal, err := s.svc.CreateDeal(c.Request.Context(), in)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deal)
}

func (s *Server) listDeals(c *gin.Context) {
	deals, err := s.svc.FindDeals(c.Request.Context(), c.Query("stage"), queryInt(c, "limit"))
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	if deals == nil {
		deals = []models.Deal{}
	}
	RespondOK(c, gin.H{"deals": deals, "count": len(deals)})
}

func (s *Server) getDeal(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	detail, err := s.svc.GetDeal(c.Request.Context(), id, pipeline.GetDealOptions{
		IncludeVotes:    c.Query("include_votes") == "true",
		IncludeFounders: c.Query("include_founders") == "true",
	})
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (s *Server) updateDeal(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var in pipeline.DealInput
	if !s.bind(c, &in) {
		return
	}
	deal, err := s.svc.UpdateDeal(c.Request.Context(), id, in)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, deal)
}

func (s *Server) deleteDeal(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.DeleteDeal(c.Request.Context(), id); err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "deleted": true})
}

type founderBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
}

func (s *Server) addFounder(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var body founderBody
	if !s.bind(c, &body) {
		return
	}
	founder := &models.Founder{DealID: id, Name: body.Name, Email: body.Email, LinkedIn: body.LinkedIn}
	if err := s.svc.AddFounder(c.Request.Context(), founder); err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, founder)
}

func (s *Server) listVotes(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	votes, err := s.svc.ListVotes(c.Request.Context(), id)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	if votes == nil {
		votes = []models.Vote{}
	}
	RespondOK(c, gin.H{"votes": votes, "summary": models.Summarize(votes)})
}

type voteBody struct {
	ConvictionLevel        *int    `json:"conviction_level"`
	StrongNo               *bool   `json:"strong_no"`
	PilotCustomerInterest  *bool   `json:"pilot_customer_interest"`
	PilotCustomerResponse  *string `json:"pilot_customer_response"`
	WouldBuy               *bool   `json:"would_buy"`
	BuyingInterestResponse *string `json:"buying_interest_response"`
	Comment                *string `json:"comment"`
	Feedback               *string `json:"feedback"`
	ReviewStatus           *string `json:"review_status"`
}

// submitVote is a PUT on the (deal, LP) pair; omitted fields keep their
// stored values.
func (s *Server) submitVote(c *gin.Context) {
	dealID, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	lpID, ok := s.pathID(c, "lp_id")
	if !ok {
		return
	}
	var body voteBody
	if !s.bind(c, &body) {
		return
	}
	vote, err := s.svc.SubmitVote(c.Request.Context(), models.VoteInput{
		DealID:                 dealID,
		LPID:                   lpID,
		ConvictionLevel:        body.ConvictionLevel,
		StrongNo:               body.StrongNo,
		PilotCustomerInterest:  body.PilotCustomerInterest,
		PilotCustomerResponse:  body.PilotCustomerResponse,
		WouldBuy:               body.WouldBuy,
		BuyingInterestResponse: body.BuyingInterestResponse,
		Comment:                body.Comment,
		Feedback:               body.Feedback,
		ReviewStatus:           body.ReviewStatus,
	})
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, vote)
}

func (s *Server) deleteVote(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.DeleteVote(c.Request.Context(), id); err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "deleted": true})
}

type lpBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Firm  string `json:"firm"`
	Notes string `json:"notes"`
}

func (s *Server) addLP(c *gin.Context) {
	var body lpBody
	if !s.bind(c, &body) {
		return
	}
	lp := &models.LP{Name: body.Name, Email: body.Email, Firm: body.Firm, Notes: body.Notes}
	if err := s.svc.AddLP(c.Request.Context(), lp); err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lp)
}

func (s *Server) listLPs(c *gin.Context) {
	lps, err := s.svc.FindLPs(c.Request.Context(), c.Query("q"), queryInt(c, "limit"))
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	if lps == nil {
		lps = []models.LP{}
	}
	RespondOK(c, gin.H{"lps": lps, "count": len(lps)})
}

func (s *Server) deleteLP(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	removed, err := s.svc.DeleteLP(c.Request.Context(), id)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "deleted": true, "votes_removed": removed})
}

type candidateView struct {
	models.IntroductionCandidate
	Status string `json:"status"`
}

func (s *Server) listIntroductions(c *gin.Context) {
	candidates, err := s.svc.ListIntroductionCandidates(c.Request.Context())
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	filter := c.Query("status")
	out := make([]candidateView, 0, len(candidates))
	for _, cand := range candidates {
		status := cand.Status()
		if filter != "" && !(status == filter || (filter == "none" && status == "")) {
			continue
		}
		out = append(out, candidateView{IntroductionCandidate: cand, Status: status})
	}
	RespondOK(c, gin.H{"candidates": out, "count": len(out)})
}

type manualIntroBody struct {
	LPID    string `json:"lp_id"`
	DealID  string `json:"deal_id"`
	Message string `json:"message"`
}

func (s *Server) createManualIntroduction(c *gin.Context) {
	var body manualIntroBody
	if !s.bind(c, &body) {
		return
	}
	lpID, err := pipeline.ParseID("lp_id", body.LPID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	dealID, err := pipeline.ParseID("deal_id", body.DealID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	intro, vote, err := s.svc.CreateManualIntroduction(c.Request.Context(), lpID, dealID, body.Message)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"introduction": intro, "vote": vote})
}

type sendIntroBody struct {
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

func (s *Server) sendIntroduction(c *gin.Context) {
	voteID, ok := s.pathID(c, "vote_id")
	if !ok {
		return
	}
	var body sendIntroBody
	if !s.bind(c, &body) {
		return
	}
	intro, err := s.svc.SendIntroduction(c.Request.Context(), voteID, body.Message, body.Recipients)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, intro)
}

func (s *Server) declineIntroduction(c *gin.Context) {
	voteID, ok := s.pathID(c, "vote_id")
	if !ok {
		return
	}
	intro, err := s.svc.DeclineIntroduction(c.Request.Context(), voteID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, intro)
}

func (s *Server) pipelineSummary(c *gin.Context) {
	counts, err := s.svc.PipelineSummary(c.Request.Context())
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"stages": counts})
}
