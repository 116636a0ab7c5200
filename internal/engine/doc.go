package engine

// Package engine is the boundary to the media extraction engines. An Engine is
// configured once from Options and then resolves metadata, predicts output
// filenames and downloads items. Three adapters are provided: the yt-dlp
// executable driven through github.com/lrstanley/go-ytdlp, and two pure-Go
// extractors (github.com/ytget/ytdlp/v2 and github.com/kkdai/youtube/v2).
