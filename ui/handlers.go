package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"advocate/app"
	"advocate/domain/dispute"
	"advocate/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const letterFilename = "demand_letter.txt"

// caseForm is the intake form
type caseForm struct {
	UserName      string `form:"user_name"`
	UserEmail     string `form:"user_email"`
	UserAddress   string `form:"user_address"`
	Company       string `form:"company" binding:"required"`
	Amount        string `form:"amount" binding:"required"`
	PurchaseDate  string `form:"purchase_date"`
	Issue         string `form:"issue" binding:"required"`
	RefNumber     string `form:"ref_number"`
	PaymentMethod string `form:"payment_method"`
	APIKey        string `form:"api_key"`
}

func defaultForm() caseForm {
	return caseForm{
		UserName:    "John Doe",
		UserEmail:   "john@example.com",
		UserAddress: "123 Main St, City, State",
		Company:     "Delta Airlines",
		Amount:      "500",
	}
}

func (f caseForm) complaint() (dispute.Complaint, error) {
	amount, err := dispute.ParseAmount(f.Amount)
	if err != nil {
		return dispute.Complaint{}, err
	}
	return dispute.Complaint{
		Name:          f.UserName,
		Email:         f.UserEmail,
		Address:       f.UserAddress,
		Company:       f.Company,
		Amount:        amount,
		PurchaseDate:  f.PurchaseDate,
		Issue:         f.Issue,
		RefNumber:     f.RefNumber,
		PaymentMethod: f.PaymentMethod,
	}, nil
}

// pageData feeds both index.html and result.html
type pageData struct {
	Form          caseForm
	KeyConfigured bool
	ProviderLabel string
	Error         string
	Case          *dispute.Case
	ReplyHTML     template.HTML
}

func (s *Server) page(form caseForm) pageData {
	// Never echo a key back into the page
	form.APIKey = ""
	return pageData{Form: form, KeyConfigured: s.keyConfigured, ProviderLabel: s.providerLabel}
}

func (s *Server) missingKeyMessage() string {
	return fmt.Sprintf("Please provide a %s API Key to run the agents.", s.providerLabel)
}

// handleIndex renders the empty intake form
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", s.page(defaultForm()))
}

// handleCreateCase runs the advocate for a submitted form
func (s *Server) handleCreateCase(c *gin.Context) {
	var form caseForm
	if err := c.ShouldBind(&form); err != nil {
		data := s.page(form)
		data.Error = "Company name, dispute amount and issue description are required."
		s.renderTemplate(c, http.StatusBadRequest, "index.html", data)
		return
	}
	data := s.page(form)

	apiKey := strings.TrimSpace(form.APIKey)
	if apiKey == "" && !s.keyConfigured {
		data.Error = s.missingKeyMessage()
		s.renderTemplate(c, http.StatusUnauthorized, "index.html", data)
		return
	}

	complaint, err := form.complaint()
	if err != nil {
		data.Error = "An error occurred: " + err.Error()
		s.renderTemplate(c, errors.HTTPStatus(err), "index.html", data)
		return
	}

	result, err := s.runner.Run(c.Request.Context(), complaint, app.RunOptions{APIKey: apiKey})
	if err != nil {
		s.logger.Error("advocate run failed", zap.String("code", errors.GetCode(err)), zap.Error(err))
		if errors.Is(err, errors.CodeMissingAPIKey) {
			data.Error = s.missingKeyMessage()
		} else {
			data.Error = "An error occurred: " + err.Error()
		}
		s.renderTemplate(c, errors.HTTPStatus(err), "index.html", data)
		return
	}

	data.Case = result
	data.ReplyHTML = renderMarkdown(result.UserReply)
	s.renderTemplate(c, http.StatusOK, "result.html", data)
}

// handleDownloadLetter returns the posted letter as a text attachment
func (s *Server) handleDownloadLetter(c *gin.Context) {
	letter := c.PostForm("letter")
	if strings.TrimSpace(letter) == "" {
		c.String(http.StatusBadRequest, "letter is empty")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+letterFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(letter))
}
