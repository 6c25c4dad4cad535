package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// MimeImage is the content-type prefix accepted for avatar uploads.
const MimeImage = "image/"

var AllowedAvatarExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
