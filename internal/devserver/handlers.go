package devserver

import (
	"net/http"
	"strings"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/gorilla/mux"
)

func (s *Server) searchHospitals(w http.ResponseWriter, r *http.Request) {
	params := &hospital.SearchParams{Keyword: r.URL.Query().Get("keyword")}

	var err error
	if params.Location, err = queryLocation(r); err != nil {
		s.writeBackendError(w, err)
		return
	}
	if params.Radius, _, err = queryFloat(r, "radius"); err != nil {
		s.writeBackendError(w, err)
		return
	}
	if params.Page, err = queryInt(r, "page"); err != nil {
		s.writeBackendError(w, err)
		return
	}
	if params.Size, err = queryInt(r, "size"); err != nil {
		s.writeBackendError(w, err)
		return
	}

	hospitals, err := s.backend.SearchHospitals(r.Context(), params)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, hospitals)
}

func (s *Server) nearbyHospitals(w http.ResponseWriter, r *http.Request) {
	params := &hospital.NearbyParams{}

	var err error
	if params.Location, err = queryLocation(r); err != nil {
		s.writeBackendError(w, err)
		return
	}
	if params.Radius, _, err = queryFloat(r, "radius"); err != nil {
		s.writeBackendError(w, err)
		return
	}
	if params.Limit, err = queryInt(r, "limit"); err != nil {
		s.writeBackendError(w, err)
		return
	}

	hospitals, err := s.backend.NearbyHospitals(r.Context(), params)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, hospitals)
}

func (s *Server) getHospital(w http.ResponseWriter, r *http.Request) {
	h, err := s.backend.GetHospital(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, h)
}

func (s *Server) departments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.backend.Departments(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, departments)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.backend.Categories(r.Context())
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, categories)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.backend.Favorites(r.Context())
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, favorites)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.AddFavorite(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, map[string]bool{"success": true})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.RemoveFavorite(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, map[string]bool{"success": true})
}

func (s *Server) ratingDimensions(w http.ResponseWriter, r *http.Request) {
	dimensions, err := s.backend.RatingDimensions(r.Context())
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, dimensions)
}

func (s *Server) hospitalRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.backend.HospitalRatings(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, ratings)
}

func (s *Server) submitRating(w http.ResponseWriter, r *http.Request) {
	var params hospital.RatingSubmitParams
	if err := decodeBody(r, &params); err != nil {
		s.writeBackendError(w, err)
		return
	}
	if err := params.Validate(); err != nil {
		s.writeBackendError(w, err)
		return
	}

	rating, err := s.backend.SubmitRating(r.Context(), mux.Vars(r)["id"], &params)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, rating)
}

func (s *Server) myRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.backend.MyRatings(r.Context())
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, ratings)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var params hospital.LoginParams
	if err := decodeBody(r, &params); err != nil {
		s.writeBackendError(w, err)
		return
	}
	if strings.TrimSpace(params.Code) == "" {
		s.writeBackendError(w, &hospital.ValidationError{Field: "code", Message: "is required"})
		return
	}

	resp, err := s.backend.Login(r.Context(), &params)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.IssueToken(resp.Token)
	writeData(w, resp)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	user, err := s.backend.Profile(r.Context())
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, user)
}

func (s *Server) chatHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := s.backend.ChatHistory(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, messages)
}

func (s *Server) decodeMessage(r *http.Request) (*hospital.SendMessageParams, error) {
	var params hospital.SendMessageParams
	if err := decodeBody(r, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Content) == "" {
		return nil, &hospital.ValidationError{Field: "content", Message: "is required"}
	}
	return &params, nil
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	params, err := s.decodeMessage(r)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}

	reply, err := s.backend.SendMessage(r.Context(), params)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, reply)
}

// streamMessage answers with the complete reply; the client replays it
func (s *Server) streamMessage(w http.ResponseWriter, r *http.Request) {
	params, err := s.decodeMessage(r)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}

	reply, err := s.backend.StreamMessage(r.Context(), params)
	if err != nil {
		s.writeBackendError(w, err)
		return
	}
	writeData(w, reply)
}
