package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyConfig        = "config"
	KeyRequestID     = "requestId"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIP     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"

	KeyUserID     = "userId"
	KeyEmail      = "email"
	KeyUsername   = "username"
	KeyCartID     = "cartId"
	KeyCartItemID = "cartItemId"
	KeyProductID  = "productId"
	KeyCategoryID = "categoryId"
	KeyWishlistID = "wishlistItemId"
	KeyQuantity   = "quantity"
	KeyCacheKey   = "cacheKey"
	KeyDbURL      = "dbUrl"
)
