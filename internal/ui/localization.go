package ui

// Localization manages terminal message translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Language codes
const (
	LanguageEnglish    = "en"
	LanguageRussian    = "ru"
	LanguagePortuguese = "pt"
	LanguageSystem     = "system"
)

// Text keys for localization
const (
	KeyStartingURL         = "starting_url"
	KeyOutputDirectory     = "output_directory"
	KeyPreparingPlaylist   = "preparing_playlist"
	KeyCreatedSubdirectory = "created_subdirectory"
	KeyFileExists          = "file_exists"
	KeySkipping            = "skipping"
	KeyStartingVideo       = "starting_video"
	KeyStartingSingle      = "starting_single"
	KeyItemError           = "item_error"
	KeyInterrupted         = "interrupted"
	KeyGenericError        = "generic_error"
	KeyUsage               = "usage"
	KeyDownloading         = "downloading"
	KeyDownloadFinished    = "download_finished"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LanguageEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == LanguageSystem {
		// Use system locale - simplified to English for now
		lang = LanguageEnglish
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LanguageEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LanguageEnglish:    "English",
		LanguageRussian:    "Русский",
		LanguagePortuguese: "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LanguageEnglish] = map[string]string{
		KeyStartingURL:         "Starting download for URL: %s",
		KeyOutputDirectory:     "Output directory: %s",
		KeyPreparingPlaylist:   "Preparing download for playlist: %s",
		KeyCreatedSubdirectory: "Created subdirectory: %s",
		KeyFileExists:          "File already exists: %s.",
		KeySkipping:            "Skipping download.",
		KeyStartingVideo:       "Starting download for video %d: %s",
		KeyStartingSingle:      "Starting download for: %s",
		KeyItemError:           "An error occurred while downloading %s: %v",
		KeyInterrupted:         "Download interrupted by user. ",
		KeyGenericError:        "An error occurred: %v",
		KeyUsage:               "Usage: ytmp4 <URL> [output_directory]",
		KeyDownloading:         "Downloading...",
		KeyDownloadFinished:    "Download finished: %.2f MB at %.2f Mbps",
	}

	// Russian texts
	l.texts[LanguageRussian] = map[string]string{
		KeyStartingURL:         "Начинается загрузка по URL: %s",
		KeyOutputDirectory:     "Папка загрузки: %s",
		KeyPreparingPlaylist:   "Подготовка загрузки плейлиста: %s",
		KeyCreatedSubdirectory: "Создана подпапка: %s",
		KeyFileExists:          "Файл уже существует: %s.",
		KeySkipping:            "Загрузка пропущена.",
		KeyStartingVideo:       "Начинается загрузка видео %d: %s",
		KeyStartingSingle:      "Начинается загрузка: %s",
		KeyItemError:           "Ошибка при загрузке %s: %v",
		KeyInterrupted:         "Загрузка прервана пользователем. ",
		KeyGenericError:        "Произошла ошибка: %v",
		KeyUsage:               "Использование: ytmp4 <URL> [папка_загрузки]",
		KeyDownloading:         "Загрузка...",
		KeyDownloadFinished:    "Загрузка завершена: %.2f МБ со скоростью %.2f Мбит/с",
	}

	// Portuguese texts
	l.texts[LanguagePortuguese] = map[string]string{
		KeyStartingURL:         "Iniciando download da URL: %s",
		KeyOutputDirectory:     "Diretório de saída: %s",
		KeyPreparingPlaylist:   "Preparando download da playlist: %s",
		KeyCreatedSubdirectory: "Subdiretório criado: %s",
		KeyFileExists:          "O arquivo já existe: %s.",
		KeySkipping:            "Download ignorado.",
		KeyStartingVideo:       "Iniciando download do vídeo %d: %s",
		KeyStartingSingle:      "Iniciando download de: %s",
		KeyItemError:           "Ocorreu um erro ao baixar %s: %v",
		KeyInterrupted:         "Download interrompido pelo usuário. ",
		KeyGenericError:        "Ocorreu um erro: %v",
		KeyUsage:               "Uso: ytmp4 <URL> [diretorio_de_saida]",
		KeyDownloading:         "Baixando...",
		KeyDownloadFinished:    "Download concluído: %.2f MB a %.2f Mbps",
	}
}
