package digest

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"newsjolt/internal/model"
)

//go:embed "templates"
var templateFS embed.FS

// Document is a rendered digest ready for dispatch.
type Document struct {
	Subject string
	HTML    string
}

type templateData struct {
	Date     string
	Good     []model.NewsItem
	Shocking []model.NewsItem
}

// Render builds the mail for one batch of news items. Items keep their
// generation order inside each section; a section with no items is left
// out entirely. Items with an unrecognized category appear in neither
// section but still reach the history stores upstream.
func Render(items []model.NewsItem, now time.Time) (Document, error) {
	tmpl, err := template.New("digest").ParseFS(templateFS, "templates/digest.tmpl")
	if err != nil {
		return Document{}, fmt.Errorf("parse digest template: %w", err)
	}

	data := templateData{Date: now.Format("Monday, 2 January 2006 15:04")}
	for _, item := range items {
		switch item.Category {
		case model.CategoryGood:
			data.Good = append(data.Good, item)
		case model.CategoryShocking:
			data.Shocking = append(data.Shocking, item)
		}
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return Document{}, fmt.Errorf("render subject: %w", err)
	}

	htmlBody := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
		return Document{}, fmt.Errorf("render body: %w", err)
	}

	return Document{
		Subject: subject.String(),
		HTML:    htmlBody.String(),
	}, nil
}
