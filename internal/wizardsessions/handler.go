package wizardsessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/server/middleware"
	"promptstudio/internal/shared/server/respond"
	"promptstudio/internal/wizard"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wizard/questions", h.questions)
	rg.GET("/wizard/session", h.session)
	rg.DELETE("/wizard/session", h.reset)
	rg.PUT("/wizard/session/answers/:questionId", h.setAnswer)
	rg.POST("/wizard/recommendation", h.recommend)
}

type setAnswerRequest struct {
	SelectedOptionIDs []string `json:"selectedOptionIds"`
}

type recommendRequest struct {
	Answers *[]wizard.Answer `json:"answers"`
}

func (h *Handler) questions(c *gin.Context) {
	respond.OK(c, gin.H{"version": h.Svc.Bank.Version(), "questions": h.Svc.Questions()})
}

func (h *Handler) session(c *gin.Context) {
	state, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Internal(c, "wizard.session_failed", err)
		return
	}
	respond.OK(c, state)
}

func (h *Handler) reset(c *gin.Context) {
	if err := h.Svc.Reset(c.Request.Context(), middleware.UserIDFromContext(c)); err != nil {
		respond.Internal(c, "wizard.reset_failed", err)
		return
	}
	respond.NoContent(c)
}

func (h *Handler) setAnswer(c *gin.Context) {
	var req setAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be JSON with selectedOptionIds", nil)
		return
	}
	state, err := h.Svc.SetAnswer(c.Request.Context(), middleware.UserIDFromContext(c), wizard.Answer{
		QuestionID:        c.Param("questionId"),
		SelectedOptionIDs: req.SelectedOptionIDs,
	})
	if err != nil {
		if !writeWizardError(c, err) {
			respond.Internal(c, "wizard.set_answer_failed", err)
		}
		return
	}
	respond.OK(c, state)
}

func (h *Handler) recommend(c *gin.Context) {
	var answers []wizard.Answer
	if c.Request.ContentLength != 0 {
		var req recommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be JSON with an answers list", nil)
			return
		}
		if req.Answers != nil {
			answers = *req.Answers
			if answers == nil {
				answers = []wizard.Answer{}
			}
		}
	}

	rec, err := h.Svc.Recommend(c.Request.Context(), middleware.UserIDFromContext(c), answers)
	if err != nil {
		if !writeWizardError(c, err) {
			respond.Internal(c, "wizard.recommend_failed", err)
		}
		return
	}
	c.Set(middleware.FrameworkIDKey, rec.FrameworkID)
	respond.OK(c, rec)
}

// writeWizardError maps answer validation errors to 400s.
func writeWizardError(c *gin.Context, err error) bool {
	var (
		missing  *wizard.MissingAnswersError
		question *wizard.InvalidQuestionError
		empty    *wizard.NoOptionSelectedError
		options  *wizard.InvalidOptionsError
		tooMany  *wizard.TooManySelectionsError
	)
	switch {
	case errors.Is(err, wizard.ErrNoAnswersProvided):
		respond.Error(c, http.StatusBadRequest, "no_answers_provided", err.Error(), nil)
	case errors.As(err, &missing):
		respond.Error(c, http.StatusBadRequest, "missing_answers", err.Error(), gin.H{"questionIds": missing.QuestionIDs})
	case errors.As(err, &question):
		respond.Error(c, http.StatusBadRequest, "invalid_question_id", err.Error(), gin.H{"questionId": question.QuestionID})
	case errors.As(err, &empty):
		respond.Error(c, http.StatusBadRequest, "no_option_selected", err.Error(), gin.H{"questionId": empty.QuestionID})
	case errors.As(err, &options):
		respond.Error(c, http.StatusBadRequest, "invalid_option_ids", err.Error(), gin.H{"questionId": options.QuestionID, "optionIds": options.OptionIDs})
	case errors.As(err, &tooMany):
		respond.Error(c, http.StatusBadRequest, "too_many_selections", err.Error(), gin.H{"questionId": tooMany.QuestionID})
	default:
		return false
	}
	return true
}
