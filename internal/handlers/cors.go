package handlers

const (
	allowedMethods  = "GET, POST, PUT, DELETE, OPTIONS"
	allowedHeaders  = "Content-Type"
	preflightMaxAge = "86400"
)

// jsonHeaders are sent with every non-preflight response
func jsonHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// preflightHeaders answer a CORS preflight; there is no body, so no
// Content-Type
func preflightHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": allowedMethods,
		"Access-Control-Allow-Headers": allowedHeaders,
		"Access-Control-Max-Age":       preflightMaxAge,
	}
}
