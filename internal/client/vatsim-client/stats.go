package vatsim_client

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"

	"twitch_vatsim_stats/internal/metrics"
	"twitch_vatsim_stats/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// FetchHours returns the member's pilot and controller totals. Failures are reported
// through Raw only, so missing data reads as zero hours.
func (vc *VatsimClient) FetchHours(ctx context.Context, cid int64) models.VatsimHours {

	if cid <= 0 {
		return models.VatsimHours{}
	}

	url := fmt.Sprintf("%s/v2/members/%d/stats", vc.apiSchemeHost, cid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.VatsimHours{Raw: map[string]interface{}{"error": err.Error()}, Failed: true}
	}

	req.Header.Add("Accept", "application/json")

	resp, err := vc.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(metrics.APIVatsim, 0)
		logrus.Warnf("vatsim stats request for %d failed: %v", cid, err)
		return models.VatsimHours{Raw: map[string]interface{}{"error": err.Error()}, Failed: true}
	}

	defer resp.Body.Close()

	metrics.ObserveUpstream(metrics.APIVatsim, resp.StatusCode)

	readedResp, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		logrus.Warnf("vatsim stats read for %d failed: %v", cid, err)
		return models.VatsimHours{Raw: map[string]interface{}{"error": err.Error()}, Failed: true}
	}

	failed := func() models.VatsimHours {
		return models.VatsimHours{Raw: map[string]interface{}{
			"status":   resp.StatusCode,
			"raw_body": string(readedResp),
		}, Failed: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.Warnf("vatsim stats for %d failed with status code: %d", cid, resp.StatusCode)
		return failed()
	}

	var data map[string]interface{}
	if err = jsoniter.Unmarshal(readedResp, &data); err != nil || len(data) == 0 {
		logrus.Warnf("vatsim stats for %d returned unusable body", cid)
		return failed()
	}

	return models.VatsimHours{
		Pilot:      extractHours(data, pilotHoursExtractors),
		Controller: extractHours(data, controllerHoursExtractors),
		Raw:        data,
	}
}
