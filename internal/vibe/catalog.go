package vibe

// Video is one entry in a vibe's background video rotation. A zero
// PlayDuration plays to the end.
type Video struct {
	ID           string `json:"id"`
	StartTime    int    `json:"startTime"`
	PlayDuration int    `json:"playDuration"`
}

// Vibe is an ambient music and video preset.
type Vibe struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Playlist    []Video `json:"videoPlaylist"`
	PlaylistURL string  `json:"playlistUrl"`
}

// Option is a selectable vibe for menus.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DefaultKey is the vibe selected at start.
const DefaultKey = "citypop"

var catalog = []Vibe{
	{
		Key:  "citypop",
		Name: "Tokyo City Pop",
		Playlist: []Video{
			{ID: "SRGxH_CTwRM", StartTime: 0, PlayDuration: 0},
			{ID: "39GOyG2_luY", StartTime: 0, PlayDuration: 8},
			{ID: "JMNUd6qqVOM", StartTime: 0, PlayDuration: 0},
			{ID: "RQ-EE5m30BY", StartTime: 0, PlayDuration: 0},
			{ID: "HN1J87jPCxU", StartTime: 208, PlayDuration: 0},
			{ID: "SAZJY-NnjbE", StartTime: 80, PlayDuration: 14},
			{ID: "xsex62QupRA", StartTime: 9, PlayDuration: 27},
			{ID: "SRGxH_CTwRM", StartTime: 500, PlayDuration: 26},
			{ID: "_gkZ6jhytb8", StartTime: 266, PlayDuration: 15},
		},
		PlaylistURL: "https://soundcloud.com/iannnnnnnnnn/sets/80s-japanese-city-pop-playlist",
	},
	{
		Key:  "synthwave",
		Name: "Synthwave",
		Playlist: []Video{
			{ID: "Iv76oc22Qr4", StartTime: 2},
			{ID: "ibNrPjETR_k", StartTime: 145},
			{ID: "cOEZgwFcpF0", StartTime: 8},
			{ID: "J_Dxhr_kXGk", StartTime: 33},
			{ID: "k3WkJq478To", StartTime: 5},
			{ID: "rDBbaGCCIhk", StartTime: 90},
		},
		PlaylistURL: "https://soundcloud.com/ferzrrn/sets/synth_20-24",
	},
	{
		Key:  "lofi",
		Name: "Lo-fi Hip Hop",
		Playlist: []Video{
			{ID: "jfKfPfyJRdk", StartTime: 0},
			{ID: "rUxyKA_-grg", StartTime: 25},
			{ID: "DWcJFNfaw9c", StartTime: 10},
			{ID: "5yx6BWlEVcY", StartTime: 40},
			{ID: "7NOSDKb0HlU", StartTime: 15},
			{ID: "lTRiuFIWV54", StartTime: 35},
		},
		PlaylistURL: "https://soundcloud.com/lofi-hip-hop-music/sets/lofi-lofi",
	},
}

// Lookup returns a copy of the vibe for key.
func Lookup(key string) (Vibe, bool) {
	for _, v := range catalog {
		if v.Key == key {
			return clone(v), true
		}
	}
	return Vibe{}, false
}

// Keys lists vibe keys in catalog order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for _, v := range catalog {
		keys = append(keys, v.Key)
	}
	return keys
}

// Options lists value/label pairs in catalog order.
func Options() []Option {
	opts := make([]Option, 0, len(catalog))
	for _, v := range catalog {
		opts = append(opts, Option{Value: v.Key, Label: v.Name})
	}
	return opts
}

func clone(v Vibe) Vibe {
	v.Playlist = append([]Video(nil), v.Playlist...)
	return v
}
