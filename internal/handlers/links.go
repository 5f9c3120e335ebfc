package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/serroba/shortlinks/internal/events"
	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// LinkHandler exposes the link directory over HTTP.
type LinkHandler struct {
	links          *shortener.Directory
	baseURL        string
	publishCreated messaging.Publish[events.LinkCreated]
	publishDeleted messaging.Publish[events.LinkDeleted]
	logger         *zap.Logger
}

// NewLinkHandler creates a new link handler. Short URLs are built as baseURL/url/{code}.
func NewLinkHandler(
	links *shortener.Directory,
	baseURL string,
	publishCreated messaging.Publish[events.LinkCreated],
	publishDeleted messaging.Publish[events.LinkDeleted],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		links:          links,
		baseURL:        baseURL,
		publishCreated: publishCreated,
		publishDeleted: publishDeleted,
		logger:         logger,
	}
}

func (h *LinkHandler) shortURL(code shortener.Code) string {
	return h.baseURL + "/url/" + string(code)
}

func (h *LinkHandler) toBody(link *shortener.ShortLink) LinkBody {
	return LinkBody{
		ID:             string(link.ID),
		Code:           string(link.Code),
		DestinationURL: link.DestinationURL,
		ShortURL:       h.shortURL(link.Code),
		CreatedAt:      link.CreatedAt,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	link, err := h.links.Create(ctx, req.Body.URL, owner)
	if err != nil {
		return nil, linkError(h.logger, err, msgNotFoundOrNotOwned)
	}

	meta := RequestMetaFromContext(ctx)
	if err = h.publishCreated(events.NewLinkCreated(link, meta.ClientIP, meta.UserAgent)); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", string(link.Code)),
			zap.Error(err),
		)
	}

	resp := &CreateLinkResponse{Body: h.toBody(link)}
	resp.Headers.Location = resp.Body.ShortURL

	return resp, nil
}

func (h *LinkHandler) ListLinks(ctx context.Context, _ *struct{}) (*ListLinksResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	links, err := h.links.ListByOwner(ctx, owner)
	if err != nil {
		return nil, linkError(h.logger, err, msgNotFoundOrNotOwned)
	}

	resp := &ListLinksResponse{Body: make([]LinkBody, 0, len(links))}
	for _, link := range links {
		resp.Body = append(resp.Body, h.toBody(link))
	}

	return resp, nil
}

func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*MessageResponse, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err = h.links.DeleteOwned(ctx, shortener.LinkID(req.ID), owner); err != nil {
		return nil, linkError(h.logger, err, msgNotFoundOrNotOwned)
	}

	event := &events.LinkDeleted{
		ID:        req.ID,
		OwnerID:   string(owner),
		DeletedAt: time.Now().UTC(),
		ClientIP:  RequestMetaFromContext(ctx).ClientIP,
	}
	if err = h.publishDeleted(event); err != nil {
		h.logger.Error("failed to publish link deleted event",
			zap.String("id", req.ID),
			zap.Error(err),
		)
	}

	resp := &MessageResponse{}
	resp.Body.Message = "url deleted successfully"

	return resp, nil
}

func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.links.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		return nil, linkError(h.logger, err, "short url not found")
	}

	resp := &RedirectResponse{Status: http.StatusFound}
	resp.Headers.Location = link.DestinationURL

	return resp, nil
}

func (h *LinkHandler) QRCode(ctx context.Context, req *QRCodeRequest) (*QRCodeResponse, error) {
	link, err := h.links.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		return nil, linkError(h.logger, err, "short url not found")
	}

	png, err := qrcode.Encode(h.shortURL(link.Code), qrcode.Medium, req.Size)
	if err != nil {
		return nil, linkError(h.logger, err, "")
	}

	return &QRCodeResponse{ContentType: "image/png", Body: png}, nil
}
