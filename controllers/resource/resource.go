package resourceControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/models"
)

// UploadDir is where resource files land; gin serves it under /uploads.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return filepath.Join(dir, "resources")
	}
	return "/var/www/fit-nest/uploads/resources"
}

// POST /api/admin/resources
// Saves the file locally and stores its public URL.
func UploadResource(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		uploadDir := UploadDir()
		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		baseName := strings.ReplaceAll(fileHeader.Filename, " ", "_")
		fileName := fmt.Sprintf("%d_%s", time.Now().Unix(), baseName)
		savePath := filepath.Join(uploadDir, fileName)

		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		resource := models.Resource{
			Title:    title,
			FileName: fileName,
			FileURL:  "/uploads/resources/" + fileName,
		}
		if err := db.Create(&resource).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB save failed"})
			return
		}

		c.JSON(http.StatusCreated, resource)
	}
}

// GET /api/resources
func GetResources(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var resources []models.Resource
		if err := db.Order("created_at DESC").Find(&resources).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resources"})
			return
		}
		c.JSON(http.StatusOK, resources)
	}
}

// DELETE /api/admin/resources/:id
func DeleteResource(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
			return
		}

		var resource models.Resource
		if err := db.First(&resource, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}

		if err := db.Delete(&resource).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resource"})
			return
		}

		// Best-effort file cleanup; the row is the source of truth.
		_ = os.Remove(filepath.Join(UploadDir(), resource.FileName))

		c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
	}
}
