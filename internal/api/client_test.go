package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lekuruu/gosu/internal/constants"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Options{
		Server:      "example.com",
		Username:    "tester",
		PasswordMD5: "5f4dcc3b5aa765d61d8327deb882cf99",
		Version:     "b20230326",
		Stream:      "stable40",
		ClientHash:  "hash",
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	c.url = srv.URL
	c.http = srv.Client()
	return c
}

func TestClient_CheckUpdates(t *testing.T) {
	var query url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/web/check-updates.php", r.URL.Path)
		query = r.URL.Query()
		io.WriteString(w, `[
			{"filename": "avcodec-51.dll", "file_hash": "aaaa"},
			{"filename": "osu!.exe", "file_hash": "bbbb", "file_version": "20230326"}
		]`)
	})

	files, err := c.CheckUpdates(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "osu!.exe", files[1].Filename)
	require.Equal(t, "bbbb", ExecutableHash(files))

	require.Equal(t, "check", query.Get("action"))
	require.Equal(t, "stable40", query.Get("stream"))
	require.NotEmpty(t, query.Get("time"))
}

func TestClient_CheckUpdates_Fallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "fallback")
	})

	_, err := c.CheckUpdates(context.Background())
	require.Error(t, err)
}

func TestExecutableHash_Missing(t *testing.T) {
	files := []UpdateFile{{Filename: "avcodec-51.dll", FileHash: "aaaa"}}
	require.Empty(t, ExecutableHash(files))
}

func TestClient_FetchVersion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/home/changelog/stable40" {
			http.Redirect(w, r, "/home/changelog/stable40/20230326.1", http.StatusFound)
			return
		}
	})

	version, err := c.FetchVersion(context.Background(), "stable40")
	require.NoError(t, err)
	require.Equal(t, "20230326.1", version)
}

func TestClient_FetchVersion_NotANumber(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.FetchVersion(context.Background(), "stable40")
	require.Error(t, err)
}

func TestClient_BanchoConnect(t *testing.T) {
	var query url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		io.WriteString(w, "nz")
	})

	require.NoError(t, c.BanchoConnect(context.Background(), true))

	require.Equal(t, "tester", query.Get("u"))
	require.Equal(t, "fail", query.Get("fx"))
	require.Equal(t, "1", query.Get("retry"))
}

func TestClient_BanchoConnect_Verify(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "error: verify")
	})

	err := c.BanchoConnect(context.Background(), false)
	require.ErrorIs(t, err, ErrVerificationNeeded)
}

func TestClient_BanchoConnect_ServerErrorIgnored(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	require.NoError(t, c.BanchoConnect(context.Background(), false))
}

func TestClient_GetFriends(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/web/osu-getfriends.php", r.URL.Path)
		io.WriteString(w, "2\n3\n4\n")
	})

	ids, err := c.GetFriends(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int32{2, 3, 4}, ids)
}

func TestClient_GetScores(t *testing.T) {
	body := "2|false|75|1|50\n" +
		"0\n" +
		"[bold:0,size:20]Artist|Title\n" +
		"9.5\n" +
		"\n" +
		"89|Cookiezi|132408001|2385|0|12|1978|0|7|1790|1|72|124493|1|1436812800|1\n"

	var query url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/web/osu-osz2-getscores.php", r.URL.Path)
		query = r.URL.Query()
		io.WriteString(w, body)
	})

	resp, err := c.GetScores(context.Background(), ScoresRequest{
		BeatmapChecksum: "d7e1002824cb188bf318326aa109469d",
		BeatmapFile:     "folder/file.osu",
		SetID:           39804,
		Mods:            constants.Hidden,
	})
	require.NoError(t, err)

	require.Equal(t, constants.StatusRanked, resp.Status)
	require.Equal(t, int32(75), resp.BeatmapID)
	require.Equal(t, int32(1), resp.BeatmapsetID)
	require.Equal(t, int32(50), resp.TotalScores)
	require.Nil(t, resp.PersonalBest)
	require.Len(t, resp.Scores, 1)
	require.Equal(t, "Cookiezi", resp.Scores[0].Username)

	require.Equal(t, "d7e1002824cb188bf318326aa109469d", query.Get("c"))
	require.Equal(t, "8", query.Get("mods"))
	// Defaults to the global top ranking.
	require.Equal(t, "1", query.Get("v"))
}

func TestClient_GetStarRating(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/difficulty-rating", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		io.WriteString(w, "6.32\n")
	})

	rating, err := c.GetStarRating(context.Background(), 75, constants.ModeOsu, constants.Hidden)
	require.NoError(t, err)
	require.InDelta(t, 6.32, rating, 1e-9)
}

func TestClient_SearchBeatmapsets(t *testing.T) {
	body := "100\n" +
		"set.osz|Artist|Title|Creator|1|9.5|2023-03-26 12:00:00|1|2|1|0|1000|900|Easy@0,Insane@0\n" +
		"other.osz|A|B|C|1|8.0|2023-03-26 12:00:00|3|4|0|0|500||Oni@1\n"

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/web/osu-search.php", r.URL.Path)
		require.Equal(t, "cool map", r.URL.Query().Get("q"))
		io.WriteString(w, body)
	})

	sets, err := c.SearchBeatmapsets(context.Background(), "cool map", constants.DisplayRanked, constants.SelectAll, 0)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	require.Equal(t, "Artist", sets[0].Artist)
	require.Equal(t, int32(1), sets[0].SetID)
	require.Len(t, sets[0].Difficulties, 2)
	require.Equal(t, constants.ModeTaiko, sets[1].Difficulties[0].Mode)
}

func TestClient_SearchBeatmapsets_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "-1\nyou need to supporter tag to use this feature\n")
	})

	_, err := c.SearchBeatmapsets(context.Background(), "query", constants.DisplayAll, constants.SelectAll, 0)
	require.ErrorContains(t, err, "supporter")
}

func TestClient_GetComments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "get", r.FormValue("a"))
		require.Equal(t, "75", r.FormValue("b"))
		io.WriteString(w, "1000\tmap\tFF0000\tnice jump\n")
	})

	comments, err := c.GetComments(context.Background(), CommentsRequest{BeatmapID: 75})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, constants.CommentMap, comments[0].Target)
	require.Equal(t, "nice jump", comments[0].Text)
}

func TestClient_GetComments_EmptyRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("an empty comment request must not hit the server")
	})

	comments, err := c.GetComments(context.Background(), CommentsRequest{})
	require.NoError(t, err)
	require.Nil(t, comments)
}

func TestClient_VerifyURL(t *testing.T) {
	c := NewClient(Options{Server: "example.com", Username: "cool tester", ClientHash: "hash"})
	require.Equal(t, "https://osu.example.com/p/verify?u=cool+tester&reason=bancho&ch=hash", c.VerifyURL())
}
