package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notekit/notekit/backend/go-services/internal/assist"
	"github.com/notekit/notekit/backend/go-services/internal/note"
	"github.com/notekit/notekit/backend/go-services/internal/note/service"
	"github.com/notekit/notekit/backend/go-services/pkg/middleware"
)

// Assistant is the AI assist surface used by the handlers.
type Assistant interface {
	Summarize(ctx context.Context, content string) (*assist.SummarizeResult, error)
	FixGrammar(ctx context.Context, content string) (*assist.GrammarResult, error)
	AutoTag(ctx context.Context, title, content string) (*assist.AutoTagResult, error)
}

type createNoteRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updateNoteRequest struct {
	Title   *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

type autoTagRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RegisterRoutes mounts the note CRUD and AI assist routes on rg.
// Note-scoped routes require the identity header; the assist routes do not.
func RegisterRoutes(rg gin.IRouter, notes service.Service, assistant Assistant, identityHeader string) {
	h := &noteHandler{notes: notes, assistant: assistant}

	ai := rg.Group("/notes/ai")
	ai.POST("/summarize", h.summarize)
	ai.POST("/fix-grammar", h.fixGrammar)
	ai.POST("/auto-tag", h.autoTag)

	scoped := rg.Group("/notes", middleware.RequireIdentity(identityHeader))
	scoped.GET("", h.list)
	scoped.POST("", h.create)
	scoped.GET("/:id", h.get)
	scoped.PATCH("/:id", h.update)
	scoped.DELETE("/:id", h.delete)
}

type noteHandler struct {
	notes     service.Service
	assistant Assistant
}

func (h *noteHandler) list(c *gin.Context) {
	list, err := h.notes.List(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": list})
}

func (h *noteHandler) get(c *gin.Context) {
	n, err := h.notes.Get(c.Request.Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": n})
}

func (h *noteHandler) create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	n, err := h.notes.Create(c.Request.Context(), middleware.Identity(c), service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": n})
}

func (h *noteHandler) update(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	n, err := h.notes.Update(c.Request.Context(), middleware.Identity(c), c.Param("id"), note.Patch{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": n})
}

func (h *noteHandler) delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

func (h *noteHandler) summarize(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	res, err := h.assistant.Summarize(c.Request.Context(), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *noteHandler) fixGrammar(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	res, err := h.assistant.FixGrammar(c.Request.Context(), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *noteHandler) autoTag(c *gin.Context) {
	var req autoTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	res, err := h.assistant.AutoTag(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
