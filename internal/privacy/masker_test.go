package privacy

import (
	"strings"
	"testing"
)

func TestMaskText(t *testing.T) {
	masker := NewMasker()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "mobile number",
			in:   "联系电话: 13812345678",
			want: "联系电话: 138****5678",
		},
		{
			name: "18 digit resident id",
			in:   "身份证号 110101199003071234",
			want: "身份证号 110101********1234",
		},
		{
			name: "15 digit resident id",
			in:   "身份证号 110101900307123",
			want: "身份证号 110101******123",
		},
		{
			name: "email address",
			in:   "邮箱 zhangsan@example.com",
			want: "邮箱 z***@example.com",
		},
		{
			name: "no pii passes through",
			in:   "本合同自双方签字之日起生效",
			want: "本合同自双方签字之日起生效",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := masker.MaskText(tt.in); got != tt.want {
				t.Errorf("MaskText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMaskTextHidesRawValues(t *testing.T) {
	masker := NewMasker()

	// Mixed text: whatever masking style applies, the raw values must be gone.
	in := "甲方: 张三, 电话 13912345678, 身份证 310101198512154321, 账号 6222021234567890, 邮箱 zs@corp.cn"
	out := masker.MaskText(in)

	for _, raw := range []string{
		"13912345678",
		"310101198512154321",
		"6222021234567890",
		"zs@corp.cn",
	} {
		if strings.Contains(out, raw) {
			t.Errorf("Raw value %q leaked into masked output: %q", raw, out)
		}
	}
}

func TestMaskTextIdempotent(t *testing.T) {
	masker := NewMasker()

	in := "电话 13812345678, 邮箱 a@b.com"
	once := masker.MaskText(in)
	twice := masker.MaskText(once)

	if once != twice {
		t.Errorf("Masking is not idempotent: %q vs %q", once, twice)
	}
}
