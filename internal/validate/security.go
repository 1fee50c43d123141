package validate

import (
	"fmt"

	"github.com/eventline-labs/eventc/pkg/spec"
)

var securityTypes = map[string]struct{}{
	spec.SecurityAPIKey:        {},
	spec.SecurityHTTP:          {},
	spec.SecurityOAuth2:        {},
	spec.SecurityOpenIDConnect: {},
	spec.SecurityPlain:         {},
	spec.SecurityScramSha256:   {},
	spec.SecurityScramSha512:   {},
	spec.SecurityGSSAPI:        {},
}

var apiKeyLocations = map[string]struct{}{
	spec.LocationQuery:  {},
	spec.LocationHeader: {},
	spec.LocationCookie: {},
}

// checkSecuritySchemes verifies scheme name uniqueness, type membership, and
// the per-type required fields. The SASL-family types (plain, scramSha256,
// scramSha512, gssapi) carry no extra fields.
func checkSecuritySchemes(doc *spec.Document) error {
	seen := make(map[string]struct{}, len(doc.Components.SecuritySchemes))
	for i := range doc.Components.SecuritySchemes {
		sc := &doc.Components.SecuritySchemes[i]
		if _, dup := seen[sc.Name]; dup {
			return &ReferenceError{Entity: "security scheme", Name: sc.Name, Detail: "duplicate security scheme name"}
		}
		seen[sc.Name] = struct{}{}

		if _, ok := securityTypes[sc.Type]; !ok {
			return &ConfigurationError{Scheme: sc.Name, Detail: fmt.Sprintf("unknown security scheme type %q", sc.Type)}
		}

		var err error
		switch sc.Type {
		case spec.SecurityAPIKey:
			err = checkAPIKeyScheme(sc)
		case spec.SecurityHTTP:
			if sc.Scheme == "" {
				err = &ConfigurationError{Scheme: sc.Name, Detail: "http scheme requires scheme"}
			}
		case spec.SecurityOAuth2:
			err = checkOAuth2Scheme(sc)
		case spec.SecurityOpenIDConnect:
			if sc.OpenIDConnectURL == "" {
				err = &ConfigurationError{Scheme: sc.Name, Detail: "openIdConnect scheme requires open_id_connect_url"}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func checkAPIKeyScheme(sc *spec.SecuritySchemeSpec) error {
	if sc.FieldName == "" {
		return &ConfigurationError{Scheme: sc.Name, Detail: "apiKey scheme requires name_field"}
	}
	if _, ok := apiKeyLocations[sc.Location]; !ok {
		return &ConfigurationError{
			Scheme: sc.Name,
			Detail: fmt.Sprintf("apiKey location must be query, header, or cookie, got %q", sc.Location),
		}
	}
	return nil
}

// checkOAuth2Scheme requires at least one declared flow and validates each
// declared flow's required URLs: implicit and authorization_code need
// authorization_url; password, client_credentials, and authorization_code
// need token_url.
func checkOAuth2Scheme(sc *spec.SecuritySchemeSpec) error {
	if sc.Flows == nil {
		return &ConfigurationError{Scheme: sc.Name, Detail: "oauth2 scheme requires flows"}
	}
	f := sc.Flows
	if f.Implicit == nil && f.Password == nil && f.ClientCredentials == nil && f.AuthorizationCode == nil {
		return &ConfigurationError{Scheme: sc.Name, Detail: "oauth2 scheme must declare at least one flow"}
	}

	if f.Implicit != nil && f.Implicit.AuthorizationURL == "" {
		return &ConfigurationError{Scheme: sc.Name, Detail: "implicit flow requires authorization_url"}
	}
	if f.Password != nil && f.Password.TokenURL == "" {
		return &ConfigurationError{Scheme: sc.Name, Detail: "password flow requires token_url"}
	}
	if f.ClientCredentials != nil && f.ClientCredentials.TokenURL == "" {
		return &ConfigurationError{Scheme: sc.Name, Detail: "client_credentials flow requires token_url"}
	}
	if f.AuthorizationCode != nil {
		if f.AuthorizationCode.AuthorizationURL == "" {
			return &ConfigurationError{Scheme: sc.Name, Detail: "authorization_code flow requires authorization_url"}
		}
		if f.AuthorizationCode.TokenURL == "" {
			return &ConfigurationError{Scheme: sc.Name, Detail: "authorization_code flow requires token_url"}
		}
	}
	return nil
}
