package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTargetURL = "https://food.grab.com/sg/en/restaurants?search=chinese-food&support-deeplink=true&searchParameter=chinese-food"

	DefaultNavigationTimeout = 2 * time.Minute
	DefaultBrowserHeadless   = true

	DefaultMaxScrolls    = 20
	DefaultScrollWait    = 15 * time.Second
	DefaultHarvestWait   = 100 * time.Second
	DefaultOutputFile    = "data.ndjson"
	DefaultDeliveryRate  = 5.0
	DefaultKeepNDJSON    = true
	DefaultEnvFile       = ".env"
	DefaultMaxScrollsCap = 1000
)
