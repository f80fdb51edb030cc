package gateway

import "testing"

func TestComputeSignature(t *testing.T) {
	body := []byte(`{"data":{"order":{"order_id":"abc","order_status":"PAID"}}}`)

	sig := ComputeSignature("secret", body)
	if sig == "" {
		t.Fatal("empty signature")
	}
	if sig != ComputeSignature("secret", body) {
		t.Error("signature is not deterministic")
	}
	if sig == ComputeSignature("other-secret", body) {
		t.Error("different secrets produced the same signature")
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"data":{"order":{"order_id":"abc","order_status":"PAID"}}}`)
	sig := ComputeSignature(secret, body)

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		want      bool
	}{
		{"valid", secret, body, sig, true},
		{"wrong secret", "other", body, sig, false},
		{"tampered body", secret, []byte(`{"data":{"order":{"order_id":"abc","order_status":"FAILED"}}}`), sig, false},
		{"garbage signature", secret, body, "not-a-signature", false},
		{"empty signature", secret, body, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifySignature(tt.secret, tt.body, tt.signature); got != tt.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}
