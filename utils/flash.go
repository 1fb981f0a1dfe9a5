package utils

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/config"
)

// Flash messages survive exactly one redirect: handlers enqueue them into a
// cookie, the renderer consumes and clears the cookie on the next page.

const flashCookie = "tracker_flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func AddFlash(c *gin.Context, level, text string) {
	flashes := pendingFlashes(c)
	flashes = append(flashes, Flash{Level: level, Text: text})
	c.Set("pending_flashes", flashes)
	c.SetCookie(flashCookie, encodeFlashes(flashes), 300, "/", "", config.CookieSecure, true)
}

func Success(c *gin.Context, text string) {
	AddFlash(c, FlashSuccess, text)
}

func Error(c *gin.Context, text string) {
	AddFlash(c, FlashError, text)
}

// ConsumeFlashes returns the queued messages and clears the cookie so each
// message is shown exactly once.
func ConsumeFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", config.CookieSecure, true)
	return decodeFlashes(raw)
}

func pendingFlashes(c *gin.Context) []Flash {
	if val, exists := c.Get("pending_flashes"); exists {
		if flashes, ok := val.([]Flash); ok {
			return flashes
		}
	}
	if raw, err := c.Cookie(flashCookie); err == nil && raw != "" {
		return decodeFlashes(raw)
	}
	return nil
}

func encodeFlashes(flashes []Flash) string {
	data, err := json.Marshal(flashes)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeFlashes(raw string) []Flash {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}
