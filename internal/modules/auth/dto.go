package auth

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OAuthLoginRequest carries a provider-verified profile. Only the OAuth
// gateway can reach the endpoint that binds it (internal token guard); the
// provider identity is trusted as already authenticated.
type OAuthLoginRequest struct {
	Provider   string `json:"provider" binding:"required"`
	ProviderID string `json:"provider_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type UserPublic struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Provider  string   `json:"provider"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Roles     []string `json:"roles"`
}

type TokenResponse struct {
	Token     string     `json:"token"`
	Type      string     `json:"type"`
	ExpiresIn int64      `json:"expires_in"`
	User      UserPublic `json:"user"`
}
