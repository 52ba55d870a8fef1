// Package audio reads and writes the tags of the audio files in an album
// directory and writes playlists for them.
//
// # Reading tags
//
// Reader returns a format independent model.FileTags for MP3 (ID3v2) and
// FLAC (Vorbis comments) files:
//
//	tags, err := audio.NewReader().Read("/music/Yes_-_[1972]_Close_to_the_Edge/01.flac")
//	fmt.Println(tags.Title(), tags.Track())
//
// Reader.Year looks up the first year tag in a directory. It is the year
// lookup the renamer hands to the name canonicalizer.
//
// # Writing tags
//
// Tagger writes TrackTags to MP3 and FLAC files. Each field follows its
// TagEditAction in TagConfig, and leftover frames written by rippers and
// stores are removed when ClearUnwanted is set:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.Write(path, audio.TrackTags{Title: "And You and I", TrackNumber: 2}, jpegBytes)
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(playlist)
//	os.WriteFile("playlist.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
