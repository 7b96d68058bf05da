package api

// API endpoint paths, all POST JSON relative to the base URL.
const (
	basePath        = "/api/v1"
	productsPath    = basePath + "/products"
	steamPath       = basePath + "/steam"
	steamGiftPath   = basePath + "/steam_gift"
	ipWhitelistPath = basePath + "/ip-whitelist"

	endpointLogin   = basePath + "/get_token"
	endpointSignup  = basePath + "/signup"
	endpointBalance = basePath + "/check_balance"
	endpointUser    = basePath + "/user"

	endpointAllServices        = productsPath + "/get_all_services"
	endpointCategories         = productsPath + "/get_categories"
	endpointServicesByCategory = productsPath + "/get_services"

	endpointCreateOrder = basePath + "/create_order"
	endpointPayOrder    = basePath + "/pay_order"
	endpointOrderInfo   = basePath + "/order_info"

	endpointSteamAmount       = steamPath + "/get_amount"
	endpointSteamCurrencyRate = steamPath + "/get_currency_rate"
	endpointGiftCalculate     = steamGiftPath + "/calculate"
	endpointGiftCreateOrder   = steamGiftPath + "/create_order"
	endpointGiftPayOrder      = steamGiftPath + "/pay_order"
	endpointSteamApps         = steamGiftPath + "/get_apps"

	endpointWhitelistAdd    = ipWhitelistPath + "/add"
	endpointWhitelistRemove = ipWhitelistPath + "/remove"
	endpointWhitelistList   = ipWhitelistPath + "/list"
)

// isTokenEndpoint reports whether a 2xx response from the path may carry
// a fresh access token to capture.
func isTokenEndpoint(path string) bool {
	return path == endpointLogin || path == endpointSignup
}
