package gsuite

import (
	"context"
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// OrgDocs fetches the marker-delimited org documents (operations, events,
// career paths) and flattens their structural content into plain text.
type OrgDocs struct {
	svc *docs.Service
}

// NewOrgDocs builds a docs client.
func NewOrgDocs(ctx context.Context, credentialsJSON string) (*OrgDocs, error) {
	httpClient, err := NewServiceAccountClient(ctx, credentialsJSON,
		docs.DocumentsScope, docs.DriveReadonlyScope)
	if err != nil {
		return nil, err
	}
	svc, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	return &OrgDocs{svc: svc}, nil
}

// FetchText downloads a document and flattens paragraphs and table cells
// into a single text blob. Table content keeps simple HTML-like markup so
// downstream parsers can distinguish tabular sections.
func (d *OrgDocs) FetchText(ctx context.Context, docID string) (string, error) {
	doc, err := d.svc.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch document %s: %w", docID, err)
	}
	if doc.Body == nil {
		return "", nil
	}
	var sb strings.Builder
	flattenElements(&sb, doc.Body.Content)
	return sb.String(), nil
}

// FetchOperations downloads and parses the operations document.
func (d *OrgDocs) FetchOperations(ctx context.Context, docID string) ([]ParsedOperation, []SkippedBlock, error) {
	text, err := d.FetchText(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	ops, skipped := ParseOperations(text)
	return ops, skipped, nil
}

// FetchEvents downloads and parses the events document.
func (d *OrgDocs) FetchEvents(ctx context.Context, docID string) ([]ParsedEvent, []SkippedBlock, error) {
	text, err := d.FetchText(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	events, skipped := ParseEvents(text)
	return events, skipped, nil
}

// FetchCareerPaths downloads and parses the career paths document.
func (d *OrgDocs) FetchCareerPaths(ctx context.Context, docID string) ([]ParsedCareerPath, []SkippedBlock, error) {
	text, err := d.FetchText(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	paths, skipped := ParseCareerPaths(text)
	return paths, skipped, nil
}

func flattenElements(sb *strings.Builder, elements []*docs.StructuralElement) {
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			for _, pe := range el.Paragraph.Elements {
				if pe.TextRun != nil {
					sb.WriteString(pe.TextRun.Content)
				}
			}
		case el.Table != nil:
			sb.WriteString("<table>")
			for _, row := range el.Table.TableRows {
				sb.WriteString("<tr>")
				for _, cell := range row.TableCells {
					sb.WriteString("<td>")
					flattenElements(sb, cell.Content)
					sb.WriteString("</td>")
				}
				sb.WriteString("</tr>")
			}
			sb.WriteString("</table>\n")
		}
	}
}
