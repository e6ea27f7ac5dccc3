package domain

// Image описывает изображение товара, которое хранится в S3-совместимом
// хранилище.
type Image struct {
	ObjectKey   string
	Bytes       []byte
	Size        int64
	ContentType string
}

func NewImage(objectKey string, data []byte, contentType string) *Image {
	return &Image{
		ObjectKey:   objectKey,
		Bytes:       data,
		Size:        int64(len(data)),
		ContentType: contentType,
	}
}
