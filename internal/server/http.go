package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter 房间统计与创建接口
//
//	GET  /rooms       全部房间
//	POST /rooms       创建房间，返回 {"id": ...}
//	GET  /rooms/{id}  单个房间
func NewRouter(rooms *RoomManager) *mux.Router {
	h := &roomHandler{rooms: rooms}
	r := mux.NewRouter()
	r.HandleFunc("/rooms", h.list).Methods(http.MethodGet)
	r.HandleFunc("/rooms", h.create).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{id}", h.get).Methods(http.MethodGet)
	return r
}

type roomHandler struct {
	rooms *RoomManager
}

func (h *roomHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rooms.GetRoomStats())
}

func (h *roomHandler) create(w http.ResponseWriter, r *http.Request) {
	id, err := h.rooms.CreateRoom()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *roomHandler) get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.rooms.RoomStats(mux.Vars(r)["id"])
	if errors.Is(err, ErrRoomNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("写入响应失败: %v", err)
	}
}
