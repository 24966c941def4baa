package ports

type IdentityService interface {
	Resolve(cookieValue string) string
}
