package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"medlink/services/storage"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON binds the body into req and answers 400 when it does not validate.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.BindingMessage(err), "")
		return false
	}
	return true
}

func bindForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.BindingMessage(err), "")
		return false
	}
	return true
}

// formFile opens an optional multipart file. A nil file with a nil error
// means the field was absent; the caller must close the returned file.
func formFile(c *gin.Context, field string) (*storage.File, io.Closer, error) {
	header, err := c.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, utils.NewError(utils.ErrValidation, "Invalid file upload")
	}
	return openFile(header)
}

func openFile(header *multipart.FileHeader) (*storage.File, io.Closer, error) {
	f, err := header.Open()
	if err != nil {
		return nil, nil, utils.WrapError(utils.ErrInternal, "Could not read uploaded file", err)
	}
	return &storage.File{Name: header.Filename, Size: header.Size, Reader: f}, f, nil
}

func closeFile(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

func ok(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(http.StatusOK, body)
}
