package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/form"
	"github.com/formforge/formforge/schema"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors []schema.ValidationError `json:"errors"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	generated, err := s.svc.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		s.logger.Error("form generation failed", "error", err)
		c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, generated)
}

func (s *Server) handleList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	forms, err := s.svc.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if forms == nil {
		forms = []form.StoredForm{}
	}
	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

func (s *Server) handleGet(c *gin.Context) {
	stored, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, form.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "form not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (s *Server) handleSubmit(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable request body"})
		return
	}
	sub, err := schema.DecodeSubmission(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rec, verrs, err := s.svc.Submit(c.Request.Context(), c.Param("id"), sub.Data)
	if errors.Is(err, form.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "form not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if len(verrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, validationResponse{Errors: verrs})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleSubmissions(c *gin.Context) {
	subs, err := s.svc.Submissions(c.Request.Context(), c.Param("id"))
	if errors.Is(err, form.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "form not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if subs == nil {
		subs = []form.SubmissionRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}
