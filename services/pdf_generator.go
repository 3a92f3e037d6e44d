package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// getChromePath returns the Chrome executable path from environment variable
func getChromePath() string {
	return os.Getenv("CHROME_PATH")
}

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	PageSize        string // letter, legal, A4
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns default options for court documents
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		PageSize:        "A4",
		MarginTop:       72,
		MarginBottom:    72,
		MarginLeft:      72,
		MarginRight:     72,
	}
}

// GeneratePDF renders HTML content to PDF using headless Chrome
func GeneratePDF(htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	// Check for custom Chrome path (for headless-shell in Docker)
	if chromePath := getChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var paperWidth, paperHeight float64
	switch options.PageSize {
	case "legal":
		paperWidth = 8.5
		paperHeight = 14.0
	case "letter":
		paperWidth = 8.5
		paperHeight = 11.0
	default: // A4
		paperWidth = 8.27
		paperHeight = 11.69
	}

	if options.PageOrientation == "landscape" {
		paperWidth, paperHeight = paperHeight, paperWidth
	}

	// Convert points to inches for margins
	marginTop := float64(options.MarginTop) / 72.0
	marginBottom := float64(options.MarginBottom) / 72.0
	marginLeft := float64(options.MarginLeft) / 72.0
	marginRight := float64(options.MarginRight) / 72.0

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.Sleep(100*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(marginTop).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithMarginRight(marginRight).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
