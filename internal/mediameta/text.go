package mediameta

import "github.com/autobrr/go-mediameta/internal/probe"

func translateText(p probe.Prober, index int) Stream {
	f := streamFields(p, KindText, index)
	s := Stream{
		Kind:    KindText,
		ID:      f.getUint64("UniqueID"),
		CodecID: f.getString("CodecID"),
		Title:   f.getString("Title"),
	}
	if s.Title == "" {
		s.Title = f.getString("Subtitle")
	}
	s.LanguageCode, s.Language = resolveLanguage(f.getString("Language/String3"), f.getString("Language/String1"))
	s.Index = f.getByte("ID")
	s.Format = SubtitleFormat(s.CodecID, f.getString("Format"))
	s.Codec = s.Format
	s.Default = f.getTriState("Default")
	s.Forced = f.getTriState("Forced")
	return s
}
