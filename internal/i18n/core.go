package i18n

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	translatorOnce sync.Once
	translator     *I18n
	defaultLang    = cnst.LangEN
)

// SetDefaultLanguage sets the default language for messages
func SetDefaultLanguage(lang string) {
	defaultLang = lang
}

// InitTranslator initializes the global translator
func InitTranslator(translationsPath string) error {
	var initErr error
	translatorOnce.Do(func() {
		translator = NewI18n(language.English)
		initErr = translator.LoadTranslations(translationsPath)
	})
	return initErr
}

// GetTranslator returns the global translator
func GetTranslator() *I18n {
	if translator == nil {
		_ = InitTranslator("configs/i18n")
	}
	return translator
}

// I18n manages internationalization and translations
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewI18n creates a new I18n instance with the specified default language
func NewI18n(defaultLang language.Tag) *I18n {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return &I18n{
		bundle:      bundle,
		defaultLang: defaultLang,
	}
}

// LoadTranslations loads translation files from the specified directory
func (i *I18n) LoadTranslations(translationsDir string) error {
	files, err := os.ReadDir(translationsDir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		i.bundle.MustLoadMessageFile(filepath.Join(translationsDir, file.Name()))
	}

	return nil
}

// Translate returns a localized string for the given message ID and language
func (i *I18n) Translate(msgID string, lang string, templateData map[string]interface{}) string {
	tag := language.Make(lang)
	localizer := i18n.NewLocalizer(i.bundle, tag.String(), i.defaultLang.String())

	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(templateData) > 0 {
		lc.TemplateData = templateData
	}

	msg, err := localizer.Localize(lc)
	if err != nil {
		return msgID
	}
	return msg
}

// LanguageMiddleware resolves the request language and stores it in the context
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.AcceptLanguage, getLanguageFromRequest(c.Request))
		c.Next()
	}
}

func getLanguageFromRequest(r *http.Request) string {
	acceptLang := r.Header.Get(cnst.AcceptLanguage)
	if acceptLang != "" {
		langs := strings.Split(acceptLang, ",")
		if len(langs) > 0 {
			firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
			return normalizeLang(firstLang)
		}
	}
	return defaultLang
}

func normalizeLang(lang string) string {
	langCode := strings.ToLower(strings.Split(lang, "-")[0])
	for _, supported := range []string{cnst.LangEN, cnst.LangES} {
		if langCode == supported {
			return langCode
		}
	}
	return defaultLang
}

func contextLang(c *gin.Context) string {
	lang, exists := c.Get(cnst.AcceptLanguage)
	if !exists || lang == "" {
		return defaultLang
	}
	langStr, ok := lang.(string)
	if !ok {
		return defaultLang
	}
	return langStr
}

// TranslateMessage translates a message ID using the context's language preference
func TranslateMessage(c *gin.Context, msgID string, data map[string]interface{}) string {
	if t := GetTranslator(); t != nil {
		return t.Translate(msgID, contextLang(c), data)
	}
	return msgID
}
