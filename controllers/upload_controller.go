package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shreeji-machinery/quotation-api/services"
	"github.com/shreeji-machinery/quotation-api/utils"
)

// UploadProductImage handles POST /api/v1/upload/product-image - stores a
// single multipart file and returns the retrieval path
func UploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "No file provided",
			},
		})
		return
	}

	if err := utils.ValidateUploadSize(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "UPLOAD_ERROR"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	key, err := services.GetFileStore().Save(fileHeader)
	if err != nil {
		log.Printf("Upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload file",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url": utils.FileURL(key),
		},
	})
}

// GetFile handles GET /api/v1/files/*filepath - serves stored bytes by key
func GetFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("filepath"), "/")

	if key == "" || strings.Contains(key, "..") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid file path",
			},
		})
		return
	}

	reader, contentType, err := services.GetFileStore().Open(key)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_NOT_FOUND",
					"message": "File not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to read file",
			},
		})
		return
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			log.Printf("warning: failed to close stored file: %v", closeErr)
		}
	}()

	content, err := io.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to read file",
			},
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, content)
}
