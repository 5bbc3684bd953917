package constants

const (
	AppName      = "storefront"
	AudienceUser = "storefront-user"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
