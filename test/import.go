package test

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MultipartFile builds a multipart request body containing the passed
// content as a file upload.
//
// It returns the body as a buffer and a map for the HTTP request headers.
// Additional form fields can be passed as key-value pairs.
func MultipartFile(t *testing.T, fileName, content string, fields map[string]string) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		assert.Fail(t, err.Error())
	}

	if _, err := io.Copy(w, strings.NewReader(content)); err != nil {
		assert.Fail(t, err.Error())
	}

	for field, value := range fields {
		if err := mw.WriteField(field, value); err != nil {
			assert.Fail(t, err.Error())
		}
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
