package conf

// Bootstrap is the process-wide configuration, resolved once at startup
// and passed explicitly into constructors.
type Bootstrap struct {
	Server   *Server
	Upstream *Upstream
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

// Upstream locates the external analysis service.
type Upstream struct {
	// BaseUrl of the analysis service; a value without a URI scheme gets
	// https:// prepended.
	BaseUrl string
	// Timeout for one outbound analysis call, e.g. "3m". The call blocks
	// the dashboard's busy state, so it must stay bounded.
	Timeout string
	// FileField is the multipart field name agreed with the service.
	FileField string
}
