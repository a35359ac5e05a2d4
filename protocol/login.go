package protocol

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Response
		Token string `json:"token"`
	}
)
