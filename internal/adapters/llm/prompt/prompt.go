// Package prompt builds the lucky-comment prompt shared by every LLM
// provider.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/happycyhe/Happyfamily-Lotto/internal/ports"
)

const System = `당신은 로또 번호 추천 앱 'HappyFamily'의 유쾌한 점술가입니다.
규칙:
- 재미있고 희망찬 점술가 말투로 1~2문장만 답합니다.
- 당첨을 보장하거나 구매를 권유하지 않습니다.
- 한국어로만 답하고, 따옴표나 마크다운 없이 문장만 출력합니다.`

// User renders the request for one batch.
func User(in ports.CommentInput) string {
	var b strings.Builder
	b.WriteString("상황: 로또 번호 추천 앱 'HappyFamily'입니다.\n")
	b.WriteString("사용자가 가족/친구들에게 물어봐서 '제외할 숫자'를 선택했습니다.\n")
	fmt.Fprintf(&b, "제외된 숫자: [%s]\n\n", join(in.Excluded))
	fmt.Fprintf(&b, "이 제외된 숫자를 피해서 AI가 생성한 행운의 번호: [%s]\n\n", join(in.Drawn))
	b.WriteString("요청:\n")
	b.WriteString("이 번호 조합이 왜 행운을 가져다줄지, 제외된 숫자들을 피한 것이 어떤 좋은 기운을 가져왔는지\n")
	b.WriteString("재미있고 희망찬 점술가 말투로 1문장~2문장 정도로 짧게 코멘트해주세요.\n")
	b.WriteString("한국어로 답변해주세요.")
	return b.String()
}

func join(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
