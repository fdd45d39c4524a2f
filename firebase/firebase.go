package firebase

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"eastside-storefront/logger"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Config is what Init needs to reach the Firebase project.
type Config struct {
	// Credentials is either a service account JSON document or a path to one.
	Credentials   string
	ProjectID     string
	StorageBucket string
}

// Init creates the Firebase app. Without credentials the application default
// credentials are used.
func Init(ctx context.Context, cfg Config, log *logger.Logger) (*firebase.App, error) {
	if log == nil {
		log = logger.Nop()
	}

	var opts []option.ClientOption
	switch {
	case strings.HasPrefix(strings.TrimSpace(cfg.Credentials), "{"):
		log.Info(ctx, "firebase.credentials_from_env")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Credentials)))
	case cfg.Credentials != "":
		log.Info(log.WithField(ctx, "path", cfg.Credentials), "firebase.credentials_from_file")
		opts = append(opts, option.WithCredentialsFile(cfg.Credentials))
	default:
		log.Warn(ctx, "firebase.default_credentials")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}

	log.Info(ctx, "firebase.initialized")
	return app, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}

var privateRanges = []*net.IPNet{
	parseCIDR("10.0.0.0/8"),
	parseCIDR("172.16.0.0/12"),
	parseCIDR("192.168.0.0/16"),
	parseCIDR("127.0.0.0/8"),
	parseCIDR("169.254.0.0/16"),
	parseCIDR("0.0.0.0/8"),
	parseCIDR("100.64.0.0/10"),
	parseCIDR("::1/128"),
	parseCIDR("fc00::/7"),
	parseCIDR("fe80::/10"),
}

// isPrivateIP checks whether an IP address is a private/reserved address.
func isPrivateIP(ip net.IP) bool {
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid CIDR: %s", cidr))
	}
	return network
}

// validateExternalURL validates that a URL is safe to fetch (prevents SSRF).
func validateExternalURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme '%s' is not allowed; only http and https are permitted", parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no hostname")
	}
	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("requests to localhost are not allowed")
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("failed to resolve hostname '%s': %v", host, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("URL resolves to private IP address %s, which is not allowed", ip.String())
		}
	}

	return nil
}
