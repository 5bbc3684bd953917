package cache

import "time"

const (
	KeyProduct    = "products:%s"
	KeyCategories = "categories"

	TTL = 1 * time.Hour
)
