package helmutil

import "strings"

// SplitImageRef splits an image reference into repository and tag.
// A missing tag defaults to "latest". The split is on the last colon
// after the last slash, so registry ports are kept with the repository
// ("localhost:5000/ip-demo" has no tag).
func SplitImageRef(image string) (repository, tag string) {
	slash := strings.LastIndex(image, "/")
	colon := strings.LastIndex(image, ":")
	if colon > slash {
		return image[:colon], image[colon+1:]
	}
	return image, "latest"
}
