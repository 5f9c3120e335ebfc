package handlers

import "time"

// CreateLinkRequest is the request body for creating a short link.
type CreateLinkRequest struct {
	Body struct {
		URL string `doc:"The destination URL (http or https)" example:"https://example.com/very/long/path" json:"originalUrl" maxLength:"2048" minLength:"1"`
	}
}

// LinkBody describes a stored short link.
type LinkBody struct {
	ID             string    `doc:"Link identifier"       example:"4b0c3f0e-6d1c-4a51-9a0e-2f0f5a8e2b1d" json:"id"`
	Code           string    `doc:"The short code"        example:"Ab3xQ9z"                              json:"code"`
	DestinationURL string    `doc:"Where the code points" example:"https://example.com/very/long/path"   json:"destinationUrl"`
	ShortURL       string    `doc:"The full short URL"    example:"http://localhost:8888/url/Ab3xQ9z"    json:"shortUrl"`
	CreatedAt      time.Time `doc:"Creation time"                                                        json:"createdAt"`
}

// CreateLinkResponse is the response for a successfully created short link.
type CreateLinkResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body LinkBody
}

// ListLinksResponse lists the caller's links, oldest first.
type ListLinksResponse struct {
	Body []LinkBody
}

// DeleteLinkRequest identifies a link to delete.
type DeleteLinkRequest struct {
	ID string `doc:"Link identifier" path:"id"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Body struct {
		Message string `example:"url deleted successfully" json:"message"`
	}
}

// RedirectRequest is the request for redirecting a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"Ab3xQ9z" path:"code"`
}

// RedirectResponse sends the client to the destination.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The destination URL" header:"Location"`
	}
}

// QRCodeRequest identifies the link to render.
type QRCodeRequest struct {
	Code string `doc:"The short code" example:"Ab3xQ9z" path:"code"`
	Size int    `default:"256" doc:"Image edge in pixels" maximum:"1024" minimum:"64" query:"size"`
}

// QRCodeResponse is a PNG image of the short URL.
type QRCodeResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Body struct {
		Name     string `example:"Ada Lovelace"      json:"name"     maxLength:"100" minLength:"1"`
		Email    string `example:"ada@example.com"   format:"email"  json:"email"    maxLength:"254"`
		Password string `json:"password"            maxLength:"72"  minLength:"6"`
	}
}

// UserBody describes an account without its credentials.
type UserBody struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponse returns an account.
type UserResponse struct {
	Body UserBody
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Body struct {
		Email    string `example:"ada@example.com" json:"email"    minLength:"1"`
		Password string `json:"password"          minLength:"1"`
	}
}

// LoginResponse carries a bearer token.
type LoginResponse struct {
	Body struct {
		AccessToken string `doc:"Bearer token for authenticated endpoints" json:"access_token"`
		TokenType   string `example:"Bearer"                              json:"token_type"`
	}
}
