package llm

import "fmt"

// BuildChatPrompt combines the extracted deck snapshot with a user question
// into the single prompt used for chat turns. Chat mode carries no system
// prompt.
func BuildChatPrompt(snapshot, question string) string {
	return fmt.Sprintf("PPTX Content:\n%s\n\nUser Question: %s", snapshot, question)
}

// BuildTransformSystemPrompt returns the system prompt for transform mode.
// It pins the model to the output contract: plan first, then emit the
// separator token, then edit lines in the positional wire format with IDs
// left untouched.
func BuildTransformSystemPrompt(separator string) string {
	return "You are a Professional Presentation Architect. \n" +
		"NOTE: Please remain grounded, impartial, realistic and accurate and remember the user does not see the internal pptx positional information. Only you do. Keep track of any constraints, requirements, preferences, specifications, etc forever. \n" +
		"1. PLAN: First, think, reason and plan the changes. Consider what the user wants, the best way to achieve it along with the best way to get there. Also consider what is already in the slide. Think, reason, plan, draft and consider multiple possibilities given the prior then tackle the whole thing.\n" +
		fmt.Sprintf("2. SEPARATOR: When ready to output code, you MUST output this line: %s ENSURE YOU USE %s otherwise the content might not be parsed!\n", separator, separator) +
		"3. OUTPUT: After that line, write the modified lines in format {S#:Sh#:P#} || Text\n" +
		"Do not change IDs and when discussing slides do not mention them since the user does not see the {S1:Sh2:P0} || they only see the stuff after the ||. Only change the text not anything before the ||."
}

// BuildTransformUserPrompt embeds the user's instruction and the full deck
// snapshot for transform mode.
func BuildTransformUserPrompt(instruction, snapshot string) string {
	return fmt.Sprintf("INSTRUCTION: %s\n\nDATA:\n%s", instruction, snapshot)
}
