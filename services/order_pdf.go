package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"courtdesk/apperrors"
	"courtdesk/models"
)

const orderPDFTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; color: #111; line-height: 1.6; }
  .header { text-align: center; border-bottom: 2px solid #111; padding-bottom: 12px; }
  .header h1 { margin: 0; font-size: 18px; letter-spacing: 2px; }
  .meta { margin: 24px 0; font-size: 13px; }
  .meta td { padding: 2px 12px 2px 0; }
  .content { margin: 24px 0; white-space: pre-wrap; }
  .signature { margin-top: 64px; font-size: 13px; }
  .signature .line { border-top: 1px solid #111; width: 280px; padding-top: 4px; }
</style>
</head>
<body>
  <div class="header">
    <h1>IN THE COURT REGISTRY</h1>
    <div>{{.Court}}</div>
  </div>
  <table class="meta">
    <tr><td>Case Number</td><td><strong>{{.CaseNumber}}</strong></td></tr>
    <tr><td>Case Title</td><td>{{.CaseTitle}}</td></tr>
    <tr><td>Order</td><td>{{.OrderTitle}}</td></tr>
    <tr><td>Drafted</td><td>{{.DraftedDate}}</td></tr>
  </table>
  <div class="content">{{.Content}}</div>
  <div class="signature">
    <div class="line">{{.SignedBy}}</div>
    <div>Signed on {{.SignedAt}}</div>
  </div>
</body>
</html>`

var orderTemplate = template.Must(template.New("order").Parse(orderPDFTemplate))

// GenerateOrderPDF renders a signed order as a PDF document. Draft orders
// have no legal effect and cannot be exported.
func GenerateOrderPDF(order *models.Order, caseRecord *models.Case, signer *models.User) ([]byte, error) {
	if !order.IsSigned() {
		return nil, apperrors.Validation("order %d has not been signed", order.ID)
	}

	court := "High Court"
	if caseRecord.Court != nil && *caseRecord.Court != "" {
		court = *caseRecord.Court
	}
	signedAt := ""
	if order.SignedAt != nil {
		signedAt = order.SignedAt.Format("2 January 2006")
	}
	signerName := ""
	if signer != nil {
		signerName = signer.Name
	}

	data := map[string]string{
		"Court":       court,
		"CaseNumber":  caseRecord.CaseNumber,
		"CaseTitle":   caseRecord.Title,
		"OrderTitle":  order.Title,
		"DraftedDate": order.DraftedDate.Format("2 January 2006"),
		"Content":     order.Content,
		"SignedBy":    signerName,
		"SignedAt":    signedAt,
	}

	var buf bytes.Buffer
	if err := orderTemplate.Execute(&buf, data); err != nil {
		return nil, apperrors.Server(err)
	}

	pdf, err := GeneratePDF(buf.String(), DefaultPDFOptions())
	if err != nil {
		return nil, apperrors.Server(err)
	}
	return pdf, nil
}

// OrderPDFFilename builds the download filename for an order PDF
func OrderPDFFilename(order *models.Order, caseRecord *models.Case) string {
	number := strings.ReplaceAll(caseRecord.CaseNumber, "/", "-")
	return fmt.Sprintf("order-%d-%s.pdf", order.ID, number)
}
