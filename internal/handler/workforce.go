// Package handler 提供API处理器
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/staffview/staffview/internal/service"
	"github.com/staffview/staffview/pkg/logger"
	"github.com/staffview/staffview/pkg/model"
)

// DatasetResponse 数据集响应
type DatasetResponse struct {
	Success bool           `json:"success"`
	Data    *model.Dataset `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// StaffDetail 单员工视图响应体
type StaffDetail struct {
	Profile   *model.StaffProfile    `json:"profile"`
	Conflicts []*model.ShiftConflict `json:"conflicts"`
}

// StaffResponse 单员工视图响应
type StaffResponse struct {
	Success bool         `json:"success"`
	Data    *StaffDetail `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// WorkforceHandler 排班视图处理器
type WorkforceHandler struct {
	svc *service.DatasetService
}

// NewWorkforceHandler 创建排班视图处理器
func NewWorkforceHandler(svc *service.DatasetService) *WorkforceHandler {
	return &WorkforceHandler{svc: svc}
}

// Dataset 处理完整数据集请求
// GET /api/v1/workforce/dataset[?refresh=true]
func (h *WorkforceHandler) Dataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	logger.WithContext(r.Context()).Info().
		Bool("force_refresh", forceRefresh).
		Msg("接收数据集请求")

	data := h.svc.LoadDataset(r.Context(), forceRefresh)

	writeJSON(w, http.StatusOK, DatasetResponse{Success: true, Data: data})
}

// Staff 处理单员工视图请求
// GET /api/v1/workforce/staff/{id}[?refresh=true]
func (h *WorkforceHandler) Staff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/workforce/staff/")
	if id == "" || strings.Contains(id, "/") {
		sendJSONError(w, "员工ID无效", http.StatusBadRequest)
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	profile, conflicts := h.svc.LoadProfileByID(r.Context(), id, forceRefresh)

	// profile 为 null 表示员工不在当前数据集中，仍按成功返回
	writeJSON(w, http.StatusOK, StaffResponse{
		Success: true,
		Data:    &StaffDetail{Profile: profile, Conflicts: conflicts},
	})
}

// writeJSON 输出JSON响应
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// sendJSONError 输出JSON错误响应
func sendJSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
