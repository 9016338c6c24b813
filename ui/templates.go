package ui

import (
	"bytes"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"go.uber.org/zap"
)

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// Render to a buffer first so a template error never leaves a half page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template error", zap.String("template", templateName), zap.Error(err))
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("error writing template response", zap.Error(err))
	}
}

// renderMarkdown converts model-written markdown to HTML. Raw HTML in the
// source is dropped and links with untrusted protocols render as plain text.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink | html.NofollowLinks,
	})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}
