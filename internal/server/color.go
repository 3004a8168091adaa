package server

import (
	"context"
	"errors"

	"github.com/matkrin/colord/internal/color"
	"github.com/matkrin/colord/internal/document"
	"github.com/matkrin/colord/internal/lsp"
)

func handleDocumentColor(ctx context.Context, request *lsp.DocumentColorRequest, state *State) any {
	uri := request.Params.TextDocument.URI

	spans, err := state.DocumentColors(ctx, uri)
	if err != nil {
		return errorResponseFor(request.ID, err)
	}

	colorInformation := make([]lsp.ColorInformation, 0, len(spans))
	for _, span := range spans {
		colorInformation = append(colorInformation, lsp.ColorInformation{
			Range: span.Range,
			Color: span.Color.ToLSP(),
		})
	}

	return &lsp.DocumentColorResponse{
		Response: lsp.Response{
			RPC: lsp.RPC_VERSION,
			ID:  &request.ID,
		},
		Result: colorInformation,
	}
}

// handleColorPresentation formats the supplied color; it does not check the
// (color, range) pair against any earlier scan. Always returns at least the
// hex candidate.
func handleColorPresentation(request *lsp.ColorPresentationRequest, state *State) any {
	targetRange := request.Params.Range
	if invertedRange(targetRange) {
		resp := lsp.NewErrorResponse(request.ID, lsp.CodeInvalidParams, "range start is after range end")
		return &resp
	}

	value := color.FromLSP(request.Params.Color)
	labels := color.Presentations(value)

	presentations := make([]lsp.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		presentations = append(presentations, lsp.ColorPresentation{
			Label: label,
			TextEdit: &lsp.TextEdit{
				Range:   targetRange,
				NewText: label,
			},
		})
	}

	return &lsp.ColorPresentationResponse{
		Response: lsp.Response{
			RPC: lsp.RPC_VERSION,
			ID:  &request.ID,
		},
		Result: presentations,
	}
}

func invertedRange(r lsp.Range) bool {
	if r.Start.Line != r.End.Line {
		return r.Start.Line > r.End.Line
	}
	return r.Start.Character > r.End.Character
}

func errorResponseFor(id int, err error) *lsp.ErrorResponse {
	var resp lsp.ErrorResponse
	switch {
	case errors.Is(err, document.ErrUnknownDocument):
		resp = lsp.NewErrorResponse(id, lsp.CodeUnknownDocument, err.Error())
	case errors.Is(err, document.ErrInvalidRange):
		resp = lsp.NewErrorResponse(id, lsp.CodeInvalidParams, err.Error())
	case errors.Is(err, context.Canceled):
		resp = lsp.NewErrorResponse(id, lsp.CodeRequestCancelled, "request cancelled")
	default:
		resp = lsp.NewErrorResponse(id, lsp.CodeInternalError, err.Error())
	}
	return &resp
}
