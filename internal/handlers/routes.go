package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// BearerScheme names the security scheme that requires an access token.
const BearerScheme = "bearer"

var bearerAuth = []map[string][]string{{BearerScheme: {}}}

// RegisterRoutes registers the auth and link routes.
func RegisterRoutes(api huma.API, links *LinkHandler, accounts *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Create an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, accounts.Register)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Exchange credentials for an access token",
		Tags:        []string{"Auth"},
	}, accounts.Login)

	huma.Register(api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Current account",
		Tags:        []string{"Auth"},
		Security:    bearerAuth,
	}, accounts.Me)

	huma.Register(api, huma.Operation{
		OperationID:   "create-link",
		Method:        http.MethodPost,
		Path:          "/url/shorten",
		Summary:       "Create short link",
		Description:   "Stores the destination under a freshly generated code owned by the caller.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, links.CreateLink)

	huma.Register(api, huma.Operation{
		OperationID: "list-links",
		Method:      http.MethodGet,
		Path:        "/url/my",
		Summary:     "List my links",
		Tags:        []string{"URLs"},
		Security:    bearerAuth,
	}, links.ListLinks)

	huma.Register(api, huma.Operation{
		OperationID: "delete-link",
		Method:      http.MethodDelete,
		Path:        "/url/{id}",
		Summary:     "Delete one of my links",
		Tags:        []string{"URLs"},
		Security:    bearerAuth,
	}, links.DeleteLink)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/url/{code}",
		Summary:     "Redirect to destination",
		Tags:        []string{"URLs"},
	}, links.Redirect)

	huma.Register(api, huma.Operation{
		OperationID: "link-qr",
		Method:      http.MethodGet,
		Path:        "/url/{code}/qr",
		Summary:     "QR code for a short link",
		Tags:        []string{"URLs"},
	}, links.QRCode)
}
