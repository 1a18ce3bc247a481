package libs

import (
	"fmt"
	"log"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// NewCloudinary prefers the separate credentials and falls back to
// CLOUDINARY_URL. It returns nil, nil when neither is configured.
func NewCloudinary(cloudinaryURL, cloudName, apiKey, apiSecret string) (*cloudinary.Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cloudName != "" && apiKey != "" && apiSecret != "":
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	case cloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}

// ImageResolver turns stored image references into URLs a browser can load.
type ImageResolver struct {
	cld     *cloudinary.Cloudinary
	baseURL string
}

func NewImageResolver(cld *cloudinary.Cloudinary, assetBaseURL string) *ImageResolver {
	return &ImageResolver{
		cld:     cld,
		baseURL: strings.TrimRight(assetBaseURL, "/"),
	}
}

// Resolve leaves absolute URLs alone. Other references become Cloudinary
// delivery URLs when Cloudinary is configured, else paths under the asset
// base URL.
func (r *ImageResolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}

	if r.cld != nil {
		url, err := r.deliveryURL(ref)
		if err == nil {
			return url
		}
		log.Printf("cloudinary url for %q: %v", ref, err)
	}

	return r.baseURL + "/" + strings.TrimLeft(ref, "/")
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//")
}

func (r *ImageResolver) deliveryURL(publicID string) (string, error) {
	img, err := r.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	return img.String()
}
