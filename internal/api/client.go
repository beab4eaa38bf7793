// Package api provides access to the osu! web endpoints the client talks
// to outside of bancho: the update check, leaderboards, comments, friends,
// replays, avatars, star ratings, seasonal backgrounds, search and osz
// downloads. Score submission is deliberately absent.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/metrics"
	"github.com/Lekuruu/gosu/internal/model"
)

// ErrVerificationNeeded is returned by BanchoConnect when the server wants
// the account verified through the browser first.
var ErrVerificationNeeded = errors.New("client verification needed")

// Options configures the web client.
type Options struct {
	Server      string // domain suffix, e.g. "ppy.sh"
	Username    string
	PasswordMD5 string
	Version     string // osu-version header value
	Stream      string // release stream, e.g. "stable40"
	ClientHash  string // full fingerprint string
	Logger      *slog.Logger
}

// Client talks to https://osu.{server} and its sibling subdomains.
type Client struct {
	http *http.Client
	opts Options
	url  string
}

// NewClient builds a web client; requests carry the osu! user agent and
// the advertised client version.
func NewClient(opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
		opts: opts,
		url:  fmt.Sprintf("https://osu.%s", opts.Server),
	}
}

func (c *Client) logger() *slog.Logger { return c.opts.Logger }

func (c *Client) do(ctx context.Context, endpoint string, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", "osu!")
	req.Header.Set("osu-version", c.opts.Version)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.WebRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	metrics.WebRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, rawURL string, params url.Values) (*http.Response, error) {
	if params != nil {
		rawURL += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return c.do(ctx, endpoint, req)
}

// postForm sends a multipart form, the encoding the osu! web endpoints
// expect for their "files"-style POSTs.
func (c *Client) postForm(ctx context.Context, endpoint, rawURL string, fields map[string]string) (*http.Response, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", key, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, rawURL, &body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return c.do(ctx, endpoint, req)
}

func readBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// ticks is the current time in .NET ticks, 100ns intervals since year 1.
func ticks() int64 {
	base := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return time.Since(base).Nanoseconds() / 100
}

// UpdateFile is one entry of the check-updates response.
type UpdateFile struct {
	Filename    string `json:"filename"`
	FileHash    string `json:"file_hash"`
	FileVersion string `json:"file_version"`
	URLFull     string `json:"url_full"`
	URLPatch    string `json:"url_patch"`
	Timestamp   string `json:"timestamp"`
}

// ExecutableHash extracts the osu!.exe hash from an update listing.
func ExecutableHash(files []UpdateFile) string {
	for _, file := range files {
		if file.Filename == "osu!.exe" {
			return file.FileHash
		}
	}
	return ""
}

// CheckUpdates fetches the current file listing for the release stream.
// The executable hash inside it is required for the login fingerprint.
func (c *Client) CheckUpdates(ctx context.Context) ([]UpdateFile, error) {
	c.logger().Info("checking for updates", "stream", c.opts.Stream)

	resp, err := c.get(ctx, "check-updates", c.url+"/web/check-updates.php", url.Values{
		"action": {"check"},
		"stream": {strings.ToLower(c.opts.Stream)},
		"time":   {strconv.FormatInt(ticks(), 10)},
	})
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checking updates: status %d", resp.StatusCode)
	}
	if strings.Contains(body, "fallback") {
		return nil, fmt.Errorf("checking updates: server answered %q", body)
	}

	var files []UpdateFile
	if err := json.Unmarshal([]byte(body), &files); err != nil {
		return nil, fmt.Errorf("decoding update listing: %w", err)
	}
	return files, nil
}

// FetchVersion resolves the latest client version of the release stream by
// following the changelog redirect and taking the last path segment.
func (c *Client) FetchVersion(ctx context.Context, stream string) (string, error) {
	c.logger().Info("fetching client version", "stream", stream)

	resp, err := c.get(ctx, "changelog", c.url+"/home/changelog/"+stream, nil)
	if err != nil {
		return "", err
	}
	finalURL := resp.Request.URL.String()
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching version: status %d", resp.StatusCode)
	}

	version := strings.TrimSuffix(finalURL, "/")
	version = version[strings.LastIndex(version, "/")+1:]
	if digits := strings.ReplaceAll(version, ".", ""); digits == "" || strings.Trim(digits, "0123456789") != "" {
		return "", fmt.Errorf("fetching version: %q is not a version number", version)
	}
	return version, nil
}

// BanchoConnect performs the pre-login probe. Server-side errors on the
// official endpoint are ignored; a verification demand is surfaced as
// ErrVerificationNeeded.
func (c *Client) BanchoConnect(ctx context.Context, retry bool) error {
	c.logger().Info("connecting to bancho")

	retryFlag := "0"
	if retry {
		retryFlag = "1"
	}
	resp, err := c.get(ctx, "bancho-connect", c.url+"/web/bancho_connect.php", url.Values{
		"v":     {c.opts.Version},
		"u":     {c.opts.Username},
		"h":     {c.opts.PasswordMD5},
		"fx":    {"fail"}, // dotnet version probe
		"ch":    {c.opts.ClientHash},
		"retry": {retryFlag},
	})
	if err != nil {
		return err
	}
	body, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger().Warn("bancho_connect failed, ignoring", "status", resp.StatusCode)
		return nil
	}
	if strings.Contains(body, "error") {
		c.logger().Error("error on login", "response", strings.TrimPrefix(body, "error: "))
		if strings.Contains(body, "verify") {
			return ErrVerificationNeeded
		}
	}
	return nil
}

// VerifyURL is the address the user opens once to verify this device.
func (c *Client) VerifyURL() string {
	return fmt.Sprintf(
		"%s/p/verify?u=%s&reason=bancho&ch=%s",
		c.url,
		url.QueryEscape(c.opts.Username),
		c.opts.ClientHash,
	)
}

// Verify logs the verification URL for the user.
func (c *Client) Verify() {
	c.logger().Info("verification required")
	c.logger().Info(c.VerifyURL())
	c.logger().Info("you only need to do this once")
}

// GetSession pings osu-session.php the way the client does before login.
func (c *Client) GetSession(ctx context.Context) error {
	resp, err := c.postForm(ctx, "osu-session", c.url+"/web/osu-session.php", map[string]string{
		"u":      c.opts.Username,
		"h":      c.opts.PasswordMD5,
		"action": "check",
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// GetBackgrounds fetches the seasonal background image URLs.
func (c *Client) GetBackgrounds(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "osu-getseasonal", c.url+"/web/osu-getseasonal.php", nil)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching backgrounds: status %d", resp.StatusCode)
	}

	var backgrounds []string
	if err := json.Unmarshal([]byte(body), &backgrounds); err != nil {
		return nil, fmt.Errorf("decoding backgrounds: %w", err)
	}
	return backgrounds, nil
}

// GetFriends fetches the friend ids over the web endpoint.
func (c *Client) GetFriends(ctx context.Context) ([]int32, error) {
	resp, err := c.get(ctx, "osu-getfriends", c.url+"/web/osu-getfriends.php", url.Values{
		"u": {c.opts.Username},
		"h": {c.opts.PasswordMD5},
	})
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching friends: status %d", resp.StatusCode)
	}

	var ids []int32
	for _, line := range strings.Split(body, "\n") {
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}

// ScoresRequest describes one leaderboard lookup.
type ScoresRequest struct {
	BeatmapChecksum string
	BeatmapFile     string
	SetID           int32
	Mode            constants.Mode
	Mods            constants.Mods
	RankingType     constants.RankingType
	SkipScores      bool
}

// GetScores fetches the leaderboard of a beatmap.
func (c *Client) GetScores(ctx context.Context, req ScoresRequest) (*model.ScoreResponse, error) {
	if req.RankingType == 0 {
		req.RankingType = constants.RankingTop
	}

	skip := "0"
	if req.SkipScores {
		skip = "1"
	}
	resp, err := c.get(ctx, "osu-osz2-getscores", c.url+"/web/osu-osz2-getscores.php", url.Values{
		"s":    {skip},
		"vv":   {"4"},
		"v":    {strconv.Itoa(int(req.RankingType))},
		"c":    {req.BeatmapChecksum},
		"f":    {req.BeatmapFile},
		"m":    {strconv.Itoa(int(req.Mode))},
		"i":    {strconv.Itoa(int(req.SetID))},
		"mods": {strconv.Itoa(int(req.Mods))},
		"a":    {"0"},
		"us":   {c.opts.Username},
		"ha":   {c.opts.PasswordMD5},
	})
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching scores: status %d", resp.StatusCode)
	}
	return model.ParseScoreResponse(body, req.Mode)
}

// GetStarRating asks the lazer-era difficulty endpoint for a star rating.
func (c *Client) GetStarRating(ctx context.Context, beatmapID int32, mode constants.Mode, mods constants.Mods) (float64, error) {
	type modEntry struct {
		Acronym string `json:"acronym"`
	}
	payload := struct {
		BeatmapID int32      `json:"beatmap_id"`
		RulesetID int        `json:"ruleset_id"`
		Mods      []modEntry `json:"mods"`
	}{
		BeatmapID: beatmapID,
		RulesetID: int(mode),
	}
	for _, acronym := range mods.Acronyms() {
		payload.Mods = append(payload.Mods, modEntry{Acronym: acronym})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.url+"/difficulty-rating", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, "difficulty-rating", req)
	if err != nil {
		return 0, err
	}
	text, err := readBody(resp)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching star rating: status %d", resp.StatusCode)
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing star rating: %w", err)
	}
	return rating, nil
}

// GetFavourites fetches the beatmapset ids on the favourites list.
func (c *Client) GetFavourites(ctx context.Context) ([]int32, error) {
	resp, err := c.get(ctx, "osu-getfavourites", c.url+"/web/osu-getfavourites.php", url.Values{
		"u": {c.opts.Username},
		"h": {c.opts.PasswordMD5},
	})
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching favourites: status %d", resp.StatusCode)
	}

	var ids []int32
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}

// AddFavourite puts a beatmapset on the favourites list and returns the
// server's status line.
func (c *Client) AddFavourite(ctx context.Context, setID int32) (string, error) {
	resp, err := c.get(ctx, "osu-addfavourite", c.url+"/web/osu-addfavourite.php", url.Values{
		"u": {c.opts.Username},
		"h": {c.opts.PasswordMD5},
		"a": {strconv.Itoa(int(setID))},
	})
	if err != nil {
		return "", err
	}
	return readBody(resp)
}

// CommentsRequest identifies the map, set or replay a comment query is
// about. Ids that do not apply stay zero.
type CommentsRequest struct {
	BeatmapID int32
	SetID     int32
	ReplayID  int32
	Mode      constants.Mode
}

func (r *CommentsRequest) empty() bool {
	return r.BeatmapID == 0 && r.SetID == 0 && r.ReplayID == 0
}

func (r *CommentsRequest) fields(username, passwordMD5 string) map[string]string {
	return map[string]string{
		"u": username,
		"p": passwordMD5,
		"b": strconv.Itoa(int(r.BeatmapID)),
		"s": strconv.Itoa(int(r.SetID)),
		"r": strconv.Itoa(int(r.ReplayID)),
		"m": strconv.Itoa(int(r.Mode)),
	}
}

// GetComments fetches the comments attached to a map, set or replay.
func (c *Client) GetComments(ctx context.Context, req CommentsRequest) ([]model.Comment, error) {
	if req.empty() {
		return nil, nil
	}

	fields := req.fields(c.opts.Username, c.opts.PasswordMD5)
	fields["a"] = "get"

	resp, err := c.postForm(ctx, "osu-comment", c.url+"/web/osu-comment.php", fields)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching comments: status %d", resp.StatusCode)
	}

	var comments []model.Comment
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		comment, err := model.ParseComment(line)
		if err != nil {
			c.logger().Warn("skipping malformed comment", "err", err)
			continue
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// PostComment attaches a comment to a map, song or replay at the given
// playback time in milliseconds.
func (c *Client) PostComment(ctx context.Context, req CommentsRequest, target constants.CommentTarget, text string, timeMS int32) error {
	if req.empty() {
		return nil
	}

	fields := req.fields(c.opts.Username, c.opts.PasswordMD5)
	fields["a"] = "post"
	fields["starttime"] = strconv.Itoa(int(timeMS))
	fields["comment"] = text
	fields["target"] = string(target)

	resp, err := c.postForm(ctx, "osu-comment", c.url+"/web/osu-comment.php", fields)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// GetReplay fetches raw replay data by score id. This is the frame blob,
// not a full osr file.
func (c *Client) GetReplay(ctx context.Context, replayID int32, mode constants.Mode) ([]byte, error) {
	resp, err := c.get(ctx, "osu-getreplay", c.url+"/web/osu-getreplay.php", url.Values{
		"u": {c.opts.Username},
		"h": {c.opts.PasswordMD5},
		"m": {strconv.Itoa(int(mode))},
		"c": {strconv.Itoa(int(replayID))},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching replay: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// GetAvatar fetches a user's avatar image.
func (c *Client) GetAvatar(ctx context.Context, userID int32) ([]byte, error) {
	resp, err := c.get(ctx, "avatar", fmt.Sprintf("https://a.%s/%d", c.opts.Server, userID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching avatar: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// GetBeatmapThumbnail fetches the background thumbnail of a beatmapset.
func (c *Client) GetBeatmapThumbnail(ctx context.Context, setID int32, large bool) ([]byte, error) {
	suffix := ""
	if large {
		suffix = "l"
	}
	resp, err := c.get(ctx, "thumbnail", fmt.Sprintf("https://b.%s/thumb/%d%s.jpg", c.opts.Server, setID, suffix), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching thumbnail: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// GetBeatmapPreview fetches the song preview of a beatmapset.
func (c *Client) GetBeatmapPreview(ctx context.Context, setID int32) ([]byte, error) {
	resp, err := c.get(ctx, "preview", fmt.Sprintf("https://b.%s/preview/%d.mp3", c.opts.Server, setID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching preview: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// DownloadOsz streams a beatmapset archive. The caller owns the returned
// reader and must close it.
func (c *Client) DownloadOsz(ctx context.Context, setID int32, noVideo bool) (io.ReadCloser, error) {
	suffix := ""
	if noVideo {
		suffix = "n"
	}
	resp, err := c.get(ctx, "osz-download", fmt.Sprintf("%s/d/%d%s", c.url, setID, suffix), url.Values{
		"u":  {c.opts.Username},
		"h":  {c.opts.PasswordMD5},
		"vv": {"2"},
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading osz: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// SearchBeatmapsets queries the in-game beatmap search.
func (c *Client) SearchBeatmapsets(ctx context.Context, query string, display constants.DisplayMode, mode constants.ModeSelect, page int) ([]model.OnlineBeatmap, error) {
	resp, err := c.get(ctx, "osu-search", c.url+"/web/osu-search.php", url.Values{
		"u": {c.opts.Username},
		"h": {c.opts.PasswordMD5},
		"q": {query},
		"r": {strconv.Itoa(int(display))},
		"m": {strconv.Itoa(int(mode))},
		"p": {strconv.Itoa(page)},
	})
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching beatmapsets: status %d", resp.StatusCode)
	}

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("searching beatmapsets: empty response")
	}
	status, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, fmt.Errorf("parsing search status: %w", err)
	}
	if status < 0 {
		message := ""
		if len(lines) > 1 {
			message = lines[1]
		}
		return nil, fmt.Errorf("searching beatmapsets: %s", message)
	}

	var sets []model.OnlineBeatmap
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		set, err := model.ParseOnlineBeatmap(line)
		if err != nil {
			c.logger().Warn("skipping malformed search result", "err", err)
			continue
		}
		sets = append(sets, set)
	}
	return sets, nil
}
