package formatter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

// BriefFormatter renders a single requirement as a DOCX brief that can be
// handed to a designer outside the system.
type BriefFormatter struct{}

func NewBriefFormatter() *BriefFormatter {
	return &BriefFormatter{}
}

func (mf *BriefFormatter) Format(req *entity.Requirement) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(req.Title)

	doc.AddParagraph()

	addField(doc, "Type", string(req.RequirementType))
	if req.Dimensions != "" {
		addField(doc, "Dimensions", req.Dimensions)
	}
	if req.Deadline != nil {
		addField(doc, "Deadline", req.Deadline.Format(time.DateOnly))
	}
	if req.EstimatedHours != nil {
		addField(doc, "Estimated hours", fmt.Sprintf("%.1f", *req.EstimatedHours))
	}
	addField(doc, "Status", string(req.Status))

	if req.Copywriting != "" {
		doc.AddParagraph()
		headPar := doc.AddParagraph()
		headPar.SetStyle("Heading2")
		headPar.AddRun().AddText("Copywriting")
		doc.AddParagraph().AddRun().AddText(req.Copywriting)
	}

	if req.AdditionalNotes != "" {
		doc.AddParagraph()
		headPar := doc.AddParagraph()
		headPar.SetStyle("Heading2")
		headPar.AddRun().AddText("Notes")
		doc.AddParagraph().AddRun().AddText(req.AdditionalNotes)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addField(doc *document.Document, label, value string) {
	par := doc.AddParagraph()
	labelRun := par.AddRun()
	labelRun.Properties().SetBold(true)
	labelRun.AddText(label + ": ")
	par.AddRun().AddText(value)
}

func (mf *BriefFormatter) ContentType() string {
	return docxContentType
}

func (mf *BriefFormatter) FileExtension() string {
	return docxFileExtension
}
