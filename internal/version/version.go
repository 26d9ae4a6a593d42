package version

const (
	AppName = "Roxy"
	AppVer  = "2.1.0"
)
