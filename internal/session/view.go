package session

// View is the per-request, read-only projection of the session token
// shown to the presentation layer. Fields absent from the token are
// omitted, never defaulted.
type View struct {
	Email    string `json:"email,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	Role     string `json:"role,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Materialize copies each whitelisted field from the token onto the
// view iff the token defines it. Pure and side-effect-free; it never
// invents a field.
func Materialize(claims *Claims) View {
	var v View
	if claims == nil {
		return v
	}

	if claims.Email != "" {
		v.Email = claims.Email
	}
	if claims.Fullname != "" {
		v.Fullname = claims.Fullname
	}
	if claims.Role != "" {
		v.Role = claims.Role
	}
	if claims.Image != "" {
		v.Image = claims.Image
	}

	return v
}
